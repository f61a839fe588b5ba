package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tabiplan/internal/models/request_models"
	"tabiplan/internal/models/response_models"
	"tabiplan/internal/repositories"
	mem "tabiplan/pkg/memcache"
	"tabiplan/pkg/utils"
)

// Wizard stages, strictly linear. Forward movement happens only through
// the operation that completes the current stage; backward one at a time.
const (
	StageActivity    = 1
	StageDestination = 2
	StageDetails     = 3
	StagePlan        = 4
)

const (
	sessionTTL              = 24 * time.Hour
	transportEstimateWindow = 60 * time.Second
)

// WizardSession holds the accumulated input of one wizard run. All access
// goes through mu; network calls never happen under the lock.
type WizardSession struct {
	mu sync.Mutex

	ID               string
	Stage            int
	Activity         string
	Destinations     []response_models.Destination
	Destination      *response_models.Destination
	StartDate        string
	EndDate          string
	Budget           int
	SuggestedBudget  int
	Preferences      string
	IncludeTransport bool
	UserLocation     *response_models.Coordinates

	TransportCost        int
	TransportCostPending bool

	GeneratedPlan *response_models.Plan

	loadingDestinations bool
	generatingPlan      bool

	// transportGen invalidates in-flight estimates when the user leaves
	// the details stage; a stale result is discarded, not applied.
	transportGen int
}

// applyTransportCost applies an estimate only if it belongs to the current
// generation of the details stage.
func (s *WizardSession) applyTransportCost(gen, cost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.transportGen {
		log.Printf("Discarding stale transport estimate for session %s", s.ID)
		return
	}
	s.TransportCost = cost
	s.TransportCostPending = false
	if cost > 0 && s.Budget == 0 {
		s.SuggestedBudget = cost + 50000
	}
}

func (s *WizardSession) view() *response_models.WizardSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &response_models.WizardSessionView{
		ID:                   s.ID,
		Stage:                s.Stage,
		Activity:             s.Activity,
		Destinations:         s.Destinations,
		Destination:          s.Destination,
		StartDate:            s.StartDate,
		EndDate:              s.EndDate,
		Budget:               s.Budget,
		SuggestedBudget:      s.SuggestedBudget,
		Preferences:          s.Preferences,
		IncludeTransport:     s.IncludeTransport,
		TransportCost:        s.TransportCost,
		TransportCostPending: s.TransportCostPending,
		UserLocation:         s.UserLocation,
		GeneratedPlan:        s.GeneratedPlan,
	}
}

type WizardServiceInterface interface {
	StartSession(ctx context.Context, req request_models.StartSessionRequest) (*response_models.WizardSessionView, error)
	GetSession(id string) (*response_models.WizardSessionView, error)
	SubmitActivity(ctx context.Context, id, activity string) (*response_models.WizardSessionView, error)
	LoadDestinations(ctx context.Context, id string) (*response_models.WizardSessionView, error)
	LoadMoreDestinations(ctx context.Context, id string) (*response_models.WizardSessionView, error)
	SelectDestination(ctx context.Context, id, destinationID string) (*response_models.WizardSessionView, error)
	SetUserLocation(ctx context.Context, id string, coords response_models.Coordinates) (*response_models.WizardSessionView, error)
	SubmitDetails(ctx context.Context, id string, req request_models.DetailsRequest) (*response_models.WizardSessionView, error)
	GeneratePlan(ctx context.Context, id string) (*response_models.WizardSessionView, error)
	Back(id string) (*response_models.WizardSessionView, error)
	SavePlan(ctx context.Context, id string) (response_models.SavedPlanRecord, error)
}

type WizardService struct {
	planner   PlannerServiceInterface
	transport TransportServiceInterface
	plans     repositories.PlanRepository
	history   repositories.HistoryRepository
	sessions  mem.SessionStore
}

func NewWizardService(
	planner PlannerServiceInterface,
	transport TransportServiceInterface,
	plans repositories.PlanRepository,
	history repositories.HistoryRepository,
	sessions mem.SessionStore,
) WizardServiceInterface {
	return &WizardService{
		planner:   planner,
		transport: transport,
		plans:     plans,
		history:   history,
		sessions:  sessions,
	}
}

// StartSession opens a fresh session, or bootstraps at the final stage
// from a saved record or a shared payload. A failed bootstrap is logged
// and falls back to the normal initial stage.
func (w *WizardService) StartSession(ctx context.Context, req request_models.StartSessionRequest) (*response_models.WizardSessionView, error) {
	sess := &WizardSession{ID: uuid.NewString(), Stage: StageActivity}

	if req.PlanID != "" {
		record, err := w.plans.Get(ctx, req.PlanID)
		if err != nil {
			log.Printf("Saved plan %s not loadable, starting fresh: %v", req.PlanID, err)
		} else {
			bootstrapFromRecord(sess, record)
		}
	} else if req.Shared != "" {
		plan, err := utils.DecodeShared[response_models.Plan](req.Shared)
		if err != nil {
			log.Printf("Failed to decode shared plan, starting fresh: %v", err)
		} else {
			bootstrapFromShared(sess, plan)
		}
	}

	w.sessions.Put(sess.ID, sess, sessionTTL)
	return sess.view(), nil
}

func bootstrapFromRecord(sess *WizardSession, record response_models.SavedPlanRecord) {
	plan := record.Plan
	sess.Stage = StagePlan
	sess.Activity = record.Params.Activity
	sess.Destination = record.Params.Destination
	sess.StartDate = record.Params.StartDate
	sess.EndDate = record.Params.EndDate
	sess.Budget = record.Params.Budget
	sess.Preferences = record.Params.Preferences
	sess.IncludeTransport = record.Params.IncludeTransport
	sess.TransportCost = record.Params.TransportCost
	sess.UserLocation = record.Params.UserLocation
	sess.GeneratedPlan = &plan
}

func bootstrapFromShared(sess *WizardSession, plan response_models.Plan) {
	sess.Stage = StagePlan
	sess.Activity = plan.Params.Activity
	if plan.Params.Destination != "" {
		sess.Destination = &response_models.Destination{
			ID:   plan.Params.Destination,
			Name: plan.Params.Destination,
		}
	}
	sess.StartDate = plan.Params.StartDate
	sess.EndDate = plan.Params.EndDate
	sess.Budget = plan.Params.Budget
	sess.Preferences = plan.Params.Preferences
	sess.GeneratedPlan = &plan
}

func (w *WizardService) getSession(id string) (*WizardSession, error) {
	v, ok := w.sessions.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	sess, ok := v.(*WizardSession)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return sess, nil
}

func (w *WizardService) GetSession(id string) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

func (w *WizardService) SubmitActivity(ctx context.Context, id, activity string) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.Stage != StageActivity {
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	activity = strings.TrimSpace(activity)
	if activity == "" {
		sess.mu.Unlock()
		return nil, &utils.ValidationError{Fields: map[string]string{
			"activity": "やりたいことを入力してください",
		}}
	}
	sess.Activity = activity
	sess.Stage = StageDestination
	sess.mu.Unlock()

	return sess.view(), nil
}

func (w *WizardService) LoadDestinations(ctx context.Context, id string) (*response_models.WizardSessionView, error) {
	return w.loadDestinations(ctx, id, false)
}

func (w *WizardService) LoadMoreDestinations(ctx context.Context, id string) (*response_models.WizardSessionView, error) {
	return w.loadDestinations(ctx, id, true)
}

// loadDestinations suggests destinations for the session activity. One
// load at a time per session; results accumulate across loads, deduped
// by id.
func (w *WizardService) loadDestinations(ctx context.Context, id string, more bool) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.Stage != StageDestination {
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	if sess.loadingDestinations {
		sess.mu.Unlock()
		return nil, utils.ErrGenerationBusy
	}
	sess.loadingDestinations = true
	activity := sess.Activity
	var excludeIDs []string
	if more {
		for _, d := range sess.Destinations {
			excludeIDs = append(excludeIDs, d.ID)
		}
	}
	sess.mu.Unlock()

	destinations, genErr := w.planner.SuggestDestinations(ctx, activity, excludeIDs)

	sess.mu.Lock()
	sess.loadingDestinations = false
	if genErr == nil {
		sess.Destinations = mergeDestinations(sess.Destinations, destinations)
	}
	sess.mu.Unlock()

	if genErr != nil {
		return nil, genErr
	}
	return sess.view(), nil
}

func mergeDestinations(existing, incoming []response_models.Destination) []response_models.Destination {
	seen := make(map[string]bool, len(existing))
	for _, d := range existing {
		seen[d.ID] = true
	}
	for _, d := range incoming {
		if seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		existing = append(existing, d)
	}
	return existing
}

func (w *WizardService) SelectDestination(ctx context.Context, id, destinationID string) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.Stage != StageDestination {
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	var selected *response_models.Destination
	for i := range sess.Destinations {
		if sess.Destinations[i].ID == destinationID {
			selected = &sess.Destinations[i]
			break
		}
	}
	if selected == nil {
		sess.mu.Unlock()
		return nil, &utils.ValidationError{Fields: map[string]string{
			"destination": "旅行先を選択してください",
		}}
	}
	sess.Destination = selected
	sess.Stage = StageDetails
	// pending flips on only once a location arrives and an estimate is
	// actually in flight
	sess.TransportCostPending = false
	sess.TransportCost = 0
	sess.mu.Unlock()

	return sess.view(), nil
}

// SetUserLocation records the one-shot geolocation result and kicks off
// the transport-cost estimate for the selected destination. The estimate
// runs detached; its result is applied through the generation-id guard.
func (w *WizardService) SetUserLocation(ctx context.Context, id string, coords response_models.Coordinates) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.Stage != StageDetails || sess.Destination == nil {
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	c := coords
	sess.UserLocation = &c
	sess.transportGen++
	gen := sess.transportGen
	sess.TransportCostPending = true
	destination := sess.Destination.Name
	sess.mu.Unlock()

	go func() {
		estCtx, cancel := context.WithTimeout(context.Background(), transportEstimateWindow)
		defer cancel()
		cost := w.transport.EstimateTransportCost(estCtx, coords, destination)
		sess.applyTransportCost(gen, cost)
	}()

	return sess.view(), nil
}

func (w *WizardService) SubmitDetails(ctx context.Context, id string, req request_models.DetailsRequest) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Stage != StageDetails {
		return nil, utils.ErrStageViolation
	}

	if fields := validateDetails(req, sess.TransportCost); len(fields) > 0 {
		return nil, &utils.ValidationError{Fields: fields}
	}

	sess.StartDate = req.StartDate
	sess.EndDate = req.EndDate
	sess.Budget = req.Budget
	sess.Preferences = req.Preferences
	sess.IncludeTransport = req.IncludeTransport
	sess.Stage = StagePlan

	return &response_models.WizardSessionView{
		ID:                   sess.ID,
		Stage:                sess.Stage,
		Activity:             sess.Activity,
		Destinations:         sess.Destinations,
		Destination:          sess.Destination,
		StartDate:            sess.StartDate,
		EndDate:              sess.EndDate,
		Budget:               sess.Budget,
		SuggestedBudget:      sess.SuggestedBudget,
		Preferences:          sess.Preferences,
		IncludeTransport:     sess.IncludeTransport,
		TransportCost:        sess.TransportCost,
		TransportCostPending: sess.TransportCostPending,
		UserLocation:         sess.UserLocation,
		GeneratedPlan:        sess.GeneratedPlan,
	}, nil
}

// validateDetails checks the stage-3 form. The transport-cost floor only
// applies when the cost is known; an estimate still in flight may update
// underneath the form, in which case the check re-runs on resubmit.
func validateDetails(req request_models.DetailsRequest, transportCost int) map[string]string {
	fields := map[string]string{}

	if req.StartDate == "" {
		fields["startDate"] = "開始日を選択してください"
	}
	if req.EndDate == "" {
		fields["endDate"] = "終了日を選択してください"
	}
	if req.StartDate != "" && req.EndDate != "" {
		start, errStart := utils.ParseDate(req.StartDate)
		end, errEnd := utils.ParseDate(req.EndDate)
		switch {
		case errStart != nil:
			fields["startDate"] = "開始日の形式が正しくありません"
		case errEnd != nil:
			fields["endDate"] = "終了日の形式が正しくありません"
		case end.Before(start):
			fields["endDate"] = "終了日は開始日より後に設定してください"
		}
	}

	if req.Budget <= 0 {
		fields["budget"] = "予算を入力してください"
	} else if req.IncludeTransport && transportCost > 0 && req.Budget < transportCost {
		fields["budget"] = fmt.Sprintf("予算は最低でも交通費（¥%d）以上に設定してください", transportCost)
	}

	return fields
}

// GeneratePlan runs the itinerary generation for a session at the final
// stage. When transport is included the generation budget is reduced by
// the estimated cost, unless that would leave nothing to plan with.
func (w *WizardService) GeneratePlan(ctx context.Context, id string) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.Stage != StagePlan || sess.Destination == nil {
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	if sess.GeneratedPlan != nil {
		sess.mu.Unlock()
		return sess.view(), nil
	}
	if sess.generatingPlan {
		sess.mu.Unlock()
		return nil, utils.ErrGenerationBusy
	}
	sess.generatingPlan = true

	budget := sess.Budget
	if sess.IncludeTransport {
		if remaining := sess.Budget - sess.TransportCost; remaining > 0 {
			budget = remaining
		}
	}
	params := response_models.PlanParams{
		Activity:    sess.Activity,
		Destination: sess.Destination.Name,
		StartDate:   sess.StartDate,
		EndDate:     sess.EndDate,
		Budget:      budget,
		Preferences: sess.Preferences,
	}
	sess.mu.Unlock()

	plan, genErr := w.planner.GeneratePlan(ctx, params)

	sess.mu.Lock()
	sess.generatingPlan = false
	if genErr == nil {
		sess.GeneratedPlan = plan
	}
	sess.mu.Unlock()

	if genErr != nil {
		return nil, genErr
	}
	return sess.view(), nil
}

// Back steps one stage backward. Leaving the details stage invalidates
// any in-flight transport estimate. The generated plan survives 4→3 so
// moving forward again does not regenerate.
func (w *WizardService) Back(id string) (*response_models.WizardSessionView, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	switch sess.Stage {
	case StageDestination:
		sess.Stage = StageActivity
	case StageDetails:
		sess.transportGen++
		sess.TransportCostPending = false
		sess.Stage = StageDestination
	case StagePlan:
		sess.Stage = StageDetails
	default:
		sess.mu.Unlock()
		return nil, utils.ErrStageViolation
	}
	sess.mu.Unlock()

	return sess.view(), nil
}

// SavePlan persists the session's generated plan together with the input
// snapshot that produced it, and records the trip in history.
func (w *WizardService) SavePlan(ctx context.Context, id string) (response_models.SavedPlanRecord, error) {
	sess, err := w.getSession(id)
	if err != nil {
		return response_models.SavedPlanRecord{}, err
	}

	sess.mu.Lock()
	if sess.Stage != StagePlan || sess.GeneratedPlan == nil {
		sess.mu.Unlock()
		return response_models.SavedPlanRecord{}, utils.ErrStageViolation
	}
	record := response_models.SavedPlanRecord{
		Plan: *sess.GeneratedPlan,
		Params: response_models.WizardSnapshot{
			Activity:         sess.Activity,
			Destination:      sess.Destination,
			StartDate:        sess.StartDate,
			EndDate:          sess.EndDate,
			Budget:           sess.Budget,
			Preferences:      sess.Preferences,
			IncludeTransport: sess.IncludeTransport,
			TransportCost:    sess.TransportCost,
			UserLocation:     sess.UserLocation,
		},
	}
	entry := response_models.HistoryEntry{
		Type:     "plan",
		Activity: sess.Activity,
	}
	if sess.Destination != nil {
		entry.Destination = sess.Destination.Name
	}
	sess.mu.Unlock()

	saved, err := w.plans.Save(ctx, record)
	if err != nil {
		return response_models.SavedPlanRecord{}, err
	}
	if err := w.history.Add(ctx, entry); err != nil {
		log.Printf("Failed to record trip history: %v", err)
	}
	return saved, nil
}
