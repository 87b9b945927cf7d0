package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/metrics"
	"alcyxob/fitplan/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrAccessDenied     = errors.New("plans and progress require a completed intake and an active subscription")
	ErrMonthLocked      = errors.New("month is locked")
	ErrGenerationFailed = errors.New("assessment or plan generation failed")
	ErrUnknownWorkout   = errors.New("workout is not part of an unlocked month")
	ErrUnknownMeal      = errors.New("meal is not part of an unlocked month")
)

// EventType names a session state change that listeners can react to.
type EventType string

const (
	EventIntakeCompleted         EventType = "intake_completed"
	EventSubscriptionConfirmed   EventType = "subscription_confirmed"
	EventSubscriptionExpired     EventType = "subscription_expired"
	EventSubscriptionReactivated EventType = "subscription_reactivated"
	EventMonthRenewed            EventType = "month_renewed"
	EventAchievementUnlocked     EventType = "achievement_unlocked"
	EventSessionReset            EventType = "session_reset"
)

// Event is delivered synchronously to listeners after the state change is
// applied and saved.
type Event struct {
	Type          EventType `json:"type"`
	SessionID     string    `json:"sessionId"`
	At            time.Time `json:"at"`
	Month         int       `json:"month,omitempty"`
	AchievementID string    `json:"achievementId,omitempty"`
}

// Listener receives session events. It runs with the session lock held and
// must not call back into the session.
type Listener func(Event)

// SessionDeps are the collaborators of a Session. Zero values get defaults,
// except Store which is required.
type SessionDeps struct {
	Store     repository.SnapshotRepository
	Logger    *zap.Logger
	Clock     func() time.Time
	Assessor  AssessmentCalculator
	Generator PlanGenerator
}

func (d SessionDeps) withDefaults() SessionDeps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Assessor == nil {
		d.Assessor = NewAssessmentCalculator()
	}
	if d.Generator == nil {
		d.Generator = NewPlanGenerator()
	}
	return d
}

// appState is the app-state payload: AccessState plus the active view.
type appState struct {
	domain.AccessState
	ActiveView View `json:"activeView,omitempty"`
}

// SessionView is a read-only summary of where the session is.
type SessionView struct {
	ID              string             `json:"id"`
	Phase           domain.Phase       `json:"phase"`
	Access          domain.AccessState `json:"access"`
	CanAccessGated  bool               `json:"canAccessGated"`
	OfferVisible    bool               `json:"offerVisible"`
	ActiveView      View               `json:"activeView"`
	Step            int                `json:"step"`
	TotalSteps      int                `json:"totalSteps"`
	IntakeCompleted bool               `json:"intakeCompleted"`
	CanAdvance      bool               `json:"canAdvance"`
	CurrentQuestion *domain.Question   `json:"currentQuestion,omitempty"`
	Identity        domain.Identity    `json:"identity"`
	Answers         domain.AnswerSet   `json:"answers"`
	DarkMode        bool               `json:"darkMode"`
}

// Session is the state container of one user's onboarding. All operations are
// serialized by its mutex. Every mutating transition writes the touched
// snapshots through to the store; store failures are logged and never returned.
type Session struct {
	mu sync.Mutex

	id        string
	store     repository.SnapshotRepository
	logger    *zap.Logger
	now       func() time.Time
	assessor  AssessmentCalculator
	generator PlanGenerator

	intake     *IntakeCollector
	access     *AccessController
	progress   *ProgressTracker
	assessment *domain.Assessment
	plans      []domain.MonthlyPlan
	darkMode   bool
	listeners  []Listener
}

func newSession(id string, deps SessionDeps) *Session {
	deps = deps.withDefaults()
	s := &Session{
		id:        id,
		store:     repository.WithPrefix(deps.Store, repository.SessionPrefix(id)),
		logger:    deps.Logger.With(zap.String("sessionId", id)),
		now:       deps.Clock,
		assessor:  deps.Assessor,
		generator: deps.Generator,
		access:    NewAccessController(),
		plans:     []domain.MonthlyPlan{},
	}
	s.intake = NewIntakeCollector(s.generate)
	s.progress = NewProgressTracker(domain.NewProgressRecord(""), s.now)
	return s
}

// NewSession creates an empty session and saves its initial snapshots.
func NewSession(ctx context.Context, id string, deps SessionDeps) *Session {
	s := newSession(id, deps)
	s.saveAll(ctx)
	return s
}

// LoadSession rebuilds a session from its snapshots. Each key is loaded on its
// own: a missing or malformed snapshot falls back to that entity's default.
func LoadSession(ctx context.Context, id string, deps SessionDeps) *Session {
	s := newSession(id, deps)

	intake := domain.NewIntakeSnapshot()
	if s.load(ctx, repository.KeyIntake, &intake) {
		s.intake = RestoreIntakeCollector(intake, s.generate)
	}

	var identity domain.Identity
	if s.load(ctx, repository.KeyUserInfo, &identity) && s.intake.Identity() == (domain.Identity{}) {
		snap := s.intake.Snapshot()
		snap.Identity = identity
		s.intake = RestoreIntakeCollector(snap, s.generate)
	}

	state := appState{AccessState: domain.NewAccessState(), ActiveView: ViewIntake}
	if s.load(ctx, repository.KeyAppState, &state) {
		s.access = RestoreAccessController(state.AccessState, state.ActiveView)
	}

	var assessment domain.Assessment
	if s.load(ctx, repository.KeyAssessment, &assessment) {
		s.assessment = &assessment
	}

	var plans []domain.MonthlyPlan
	if s.load(ctx, repository.KeyMonthlyPlans, &plans) && len(plans) == domain.PlanMonths {
		s.plans = plans
	}

	record := domain.NewProgressRecord(s.now().Format(domain.DateLayout))
	if s.load(ctx, repository.KeyProgress, &record) {
		s.progress = NewProgressTracker(record, s.now)
	}

	var dark bool
	if s.load(ctx, repository.KeyThemePreference, &dark) {
		s.darkMode = dark
	}

	s.repairDerived(ctx)
	return s
}

// repairDerived reconciles the intake and access snapshots, then regenerates
// the assessment and plans of a completed intake when their snapshots were
// lost. Answers are frozen at completion and generation is deterministic, so
// the result matches what was saved; unlocks are restored from the access
// frontier.
func (s *Session) repairDerived(ctx context.Context) {
	switch {
	case s.intake.Completed() && !s.access.State().IntakeCompleted:
		if err := s.access.CompleteIntake(); err == nil {
			s.logger.Info("access state behind completed intake, marked intake completed")
			s.saveAppState(ctx)
		}
	case !s.intake.Completed() && s.access.State().IntakeCompleted:
		if s.intake.markCompleted() {
			s.logger.Info("intake snapshot behind access state, marked intake completed")
			s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
		}
	}

	if !s.intake.Completed() {
		return
	}
	answers := s.intake.Answers()

	if s.assessment == nil {
		if a, err := s.assessor.Calculate(s.intake.Identity(), answers); err == nil {
			s.assessment = &a
			s.save(ctx, repository.KeyAssessment, a)
		}
	}

	if len(s.plans) == 0 {
		plans, err := s.generator.Generate(answers)
		if err != nil {
			return
		}
		frontier := s.access.State().CurrentUnlockedMonth
		for i := range plans {
			if plans[i].Month <= frontier {
				plans[i].Unlocked = true
			}
		}
		s.plans = plans
		s.save(ctx, repository.KeyMonthlyPlans, plans)
	}
}

func (s *Session) ID() string {
	return s.id
}

// Subscribe registers a listener for session events.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// View summarizes the session.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() SessionView {
	state := s.access.State()
	v := SessionView{
		ID:              s.id,
		Phase:           state.Phase(),
		Access:          state,
		CanAccessGated:  state.CanAccessGated(),
		OfferVisible:    state.OfferVisible(),
		ActiveView:      s.access.ActiveView(),
		Step:            s.intake.Step(),
		TotalSteps:      len(domain.Questions),
		IntakeCompleted: s.intake.Completed(),
		CanAdvance:      s.intake.CanAdvance(),
		Identity:        s.intake.Identity(),
		Answers:         s.intake.Answers(),
		DarkMode:        s.darkMode,
	}
	if q, ok := s.intake.CurrentQuestion(); ok {
		v.CurrentQuestion = &q
	}
	return v
}

// SetIdentity records name, phone and email on the identity step.
func (s *Session) SetIdentity(ctx context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.intake.SetIdentity(identity); err != nil {
		return err
	}
	s.save(ctx, repository.KeyUserInfo, identity)
	s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
	return nil
}

// Answer upserts one answer.
func (s *Session) Answer(ctx context.Context, id domain.QuestionID, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.intake.Answer(id, values...); err != nil {
		return err
	}
	s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
	return nil
}

// Advance moves the questionnaire forward. Completing the last step generates
// the assessment and plans before returning.
func (s *Session) Advance(ctx context.Context) (AdvanceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.intake.Advance()
	if err != nil {
		return res, err
	}
	switch res {
	case AdvanceMoved:
		s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
	case AdvanceCompleted:
		s.saveAll(ctx)
		metrics.IntakeCompleted.Inc()
		s.logger.Info("intake completed, plans generated")
		s.emit(Event{Type: EventIntakeCompleted})
	}
	return res, nil
}

// generate is the intake completion callback. It commits nothing unless both
// generators succeed.
func (s *Session) generate(identity domain.Identity, answers domain.AnswerSet) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrGenerationFailed, r)
		}
		if err != nil {
			metrics.GenerationFailed.Inc()
			s.logger.Error("generation failed, intake left on last step", zap.Error(err))
		}
	}()

	assessment, err := s.assessor.Calculate(identity, answers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	plans, err := s.generator.Generate(answers)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(plans) == 0 {
		return fmt.Errorf("%w: no plans generated", ErrGenerationFailed)
	}
	// The access state may already record completion when the intake
	// snapshot was lost and the questionnaire was answered again.
	if !s.access.State().IntakeCompleted {
		if err := s.access.CompleteIntake(); err != nil {
			return err
		}
	}

	s.assessment = &assessment
	s.plans = plans

	first := plans[0]
	frequency := first.WorkoutPlan.SessionsPerWeek
	s.progress.SetTargets(frequency*4, first.HydrationPlan.DailyGoalMl, len(first.DietPlan.Meals))
	return nil
}

// Retreat moves the questionnaire back one step.
func (s *Session) Retreat(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.intake.Retreat() {
		return false
	}
	s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
	return true
}

// ConfirmSubscription activates the subscription after payment succeeded.
func (s *Session) ConfirmSubscription(ctx context.Context, plan domain.SubscriptionPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.ConfirmSubscription(plan, s.now()); err != nil {
		return err
	}
	s.saveAppState(ctx)
	metrics.SubscriptionTransitions.WithLabelValues("confirm").Inc()
	s.logger.Info("subscription confirmed", zap.String("plan", string(plan)))
	s.emit(Event{Type: EventSubscriptionConfirmed})
	return nil
}

func (s *Session) Expire(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.Expire(); err != nil {
		return err
	}
	s.saveAppState(ctx)
	metrics.SubscriptionTransitions.WithLabelValues("expire").Inc()
	s.emit(Event{Type: EventSubscriptionExpired})
	return nil
}

func (s *Session) Reactivate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.access.Reactivate(); err != nil {
		return err
	}
	s.saveAppState(ctx)
	metrics.SubscriptionTransitions.WithLabelValues("reactivate").Inc()
	s.emit(Event{Type: EventSubscriptionReactivated})
	return nil
}

// RenewMonth unlocks month (and any locked month before it).
func (s *Session) RenewMonth(ctx context.Context, month int) (domain.MonthlyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := domain.UnlockFrontier(s.plans)
	if err := s.access.RenewMonth(s.plans, month, s.now()); err != nil {
		return domain.MonthlyPlan{}, err
	}
	s.save(ctx, repository.KeyMonthlyPlans, s.plans)
	s.saveAppState(ctx)

	if after := domain.UnlockFrontier(s.plans); after > before {
		metrics.MonthsRenewed.Add(float64(after - before))
		s.logger.Info("months unlocked", zap.Int("from", before+1), zap.Int("to", after))
		s.emit(Event{Type: EventMonthRenewed, Month: month})
	}
	return s.plans[month-1], nil
}

// Navigate switches the active view; gated views are ignored while locked.
func (s *Session) Navigate(ctx context.Context, view View) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.access.Navigate(view)
	if err != nil {
		return s.access.ActiveView(), err
	}
	if changed {
		s.saveAppState(ctx)
	}
	return s.access.ActiveView(), nil
}

// SetTheme stores the dark mode preference.
func (s *Session) SetTheme(ctx context.Context, dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.darkMode = dark
	s.save(ctx, repository.KeyThemePreference, dark)
}

// Assessment returns the generated assessment.
func (s *Session) Assessment() (domain.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return domain.Assessment{}, ErrAccessDenied
	}
	if s.assessment == nil {
		return domain.Assessment{}, ErrPlansNotGenerated
	}
	return *s.assessment, nil
}

// Plans returns all twelve months, locked ones included.
func (s *Session) Plans() ([]domain.MonthlyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return nil, ErrAccessDenied
	}
	return append([]domain.MonthlyPlan(nil), s.plans...), nil
}

// Plan returns one unlocked month.
func (s *Session) Plan(month int) (domain.MonthlyPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return domain.MonthlyPlan{}, ErrAccessDenied
	}
	if month < 1 || month > len(s.plans) {
		return domain.MonthlyPlan{}, ErrMonthOutOfRange
	}
	plan := s.plans[month-1]
	if !plan.Unlocked {
		return domain.MonthlyPlan{}, ErrMonthLocked
	}
	return plan, nil
}

// Progress returns the ledger, rolled over to today.
func (s *Session) Progress(ctx context.Context) (domain.ProgressRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return domain.ProgressRecord{}, ErrAccessDenied
	}
	if s.progress.Rollover() {
		s.save(ctx, repository.KeyProgress, s.progress.Record())
	}
	return s.progress.Record(), nil
}

// CompleteWorkout marks a workout of an unlocked month as done today.
func (s *Session) CompleteWorkout(ctx context.Context, id string) (ProgressResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return ProgressResult{}, ErrAccessDenied
	}
	if !s.hasUnlockedWorkout(id) {
		return ProgressResult{}, ErrUnknownWorkout
	}
	res := s.progress.CompleteWorkout(id)
	s.afterProgress(ctx, "workout", res)
	return res, nil
}

// CompleteMeal marks a meal of an unlocked month as eaten today.
func (s *Session) CompleteMeal(ctx context.Context, id string) (ProgressResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return ProgressResult{}, ErrAccessDenied
	}
	if !s.hasUnlockedMeal(id) {
		return ProgressResult{}, ErrUnknownMeal
	}
	res := s.progress.CompleteMeal(id)
	s.afterProgress(ctx, "meal", res)
	return res, nil
}

// LogWater adds ml (negative to correct) to today's intake.
func (s *Session) LogWater(ctx context.Context, ml int) (ProgressResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.access.CanAccessGated() {
		return ProgressResult{}, ErrAccessDenied
	}
	res := s.progress.LogWater(ml)
	s.afterProgress(ctx, "water", res)
	return res, nil
}

func (s *Session) afterProgress(ctx context.Context, kind string, res ProgressResult) {
	if !res.Changed {
		return
	}
	s.save(ctx, repository.KeyProgress, s.progress.Record())
	metrics.ProgressEvents.WithLabelValues(kind).Inc()
	for _, a := range res.Unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(a.ID).Inc()
		s.logger.Info("achievement unlocked", zap.String("achievement", a.ID))
		s.emit(Event{Type: EventAchievementUnlocked, AchievementID: a.ID})
	}
}

func (s *Session) hasUnlockedWorkout(id string) bool {
	for _, p := range s.plans {
		if !p.Unlocked {
			continue
		}
		for _, w := range p.WorkoutPlan.Weekly {
			if w.ID == id {
				return true
			}
		}
	}
	return false
}

func (s *Session) hasUnlockedMeal(id string) bool {
	for _, p := range s.plans {
		if !p.Unlocked {
			continue
		}
		for _, m := range p.DietPlan.Meals {
			if m.ID == id {
				return true
			}
		}
	}
	return false
}

// Reset tears the session down to a fresh questionnaire and drops its
// snapshots.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.intake.Reset()
	s.access.Reset()
	s.progress.Reset()
	s.assessment = nil
	s.plans = []domain.MonthlyPlan{}

	if err := s.store.Delete(ctx, repository.SessionKeys...); err != nil {
		metrics.SnapshotFailures.WithLabelValues("delete", "*").Inc()
		s.logger.Warn("failed to delete snapshots on reset", zap.Error(err))
	}
	s.save(ctx, repository.KeyThemePreference, s.darkMode)
	s.logger.Info("session reset")
	s.emit(Event{Type: EventSessionReset})
}

func (s *Session) emit(e Event) {
	e.SessionID = s.id
	e.At = s.now().UTC()
	for _, l := range s.listeners {
		l(e)
	}
}

func (s *Session) saveAppState(ctx context.Context) {
	s.save(ctx, repository.KeyAppState, appState{
		AccessState: s.access.State(),
		ActiveView:  s.access.ActiveView(),
	})
}

func (s *Session) saveAll(ctx context.Context) {
	s.save(ctx, repository.KeyUserInfo, s.intake.Identity())
	s.save(ctx, repository.KeyIntake, s.intake.Snapshot())
	s.saveAppState(ctx)
	if s.assessment != nil {
		s.save(ctx, repository.KeyAssessment, *s.assessment)
	}
	s.save(ctx, repository.KeyMonthlyPlans, s.plans)
	s.save(ctx, repository.KeyProgress, s.progress.Record())
	s.save(ctx, repository.KeyThemePreference, s.darkMode)
}

// save writes one snapshot. A failure only means the state is not durable yet.
func (s *Session) save(ctx context.Context, key string, v any) {
	doc, err := json.Marshal(v)
	if err != nil {
		metrics.SnapshotFailures.WithLabelValues("encode", key).Inc()
		s.logger.Error("failed to encode snapshot", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Save(ctx, key, doc); err != nil {
		metrics.SnapshotFailures.WithLabelValues("save", key).Inc()
		s.logger.Warn("failed to save snapshot", zap.String("key", key), zap.Error(err))
	}
}

// load decodes one snapshot into v and reports whether it did. v may be
// partially written when it returns false and must then be discarded.
func (s *Session) load(ctx context.Context, key string, v any) bool {
	doc, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			metrics.SnapshotFailures.WithLabelValues("load", key).Inc()
			s.logger.Warn("failed to load snapshot, using default", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(doc, v); err != nil {
		metrics.SnapshotFailures.WithLabelValues("decode", key).Inc()
		s.logger.Warn("malformed snapshot, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
