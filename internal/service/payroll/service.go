package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/mosala-hr/payroll-backend-go/internal/domain/payroll"
)

// Service covers the administrative side of payroll: calculation settings
// and component management. The computation itself lives in Engine.
type Service struct {
	settingsRepo  payroll.SettingsRepository
	componentRepo payroll.ComponentRepository
}

func NewService(settingsRepo payroll.SettingsRepository, componentRepo payroll.ComponentRepository) *Service {
	return &Service{settingsRepo: settingsRepo, componentRepo: componentRepo}
}

// ========== SETTINGS ==========

func (s *Service) GetSettings(ctx context.Context) (payroll.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.NewSettingsResponse(payroll.DefaultSettings()), nil
		}
		return payroll.SettingsResponse{}, err
	}
	return payroll.NewSettingsResponse(settings), nil
}

func (s *Service) UpdateSettings(ctx context.Context, req payroll.UpdateSettingsRequest) (payroll.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SettingsResponse{}, err
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, payroll.ErrSettingsNotFound) {
			return payroll.SettingsResponse{}, err
		}
		current = payroll.DefaultSettings()
	}

	if req.ContractualWorkingDays != nil {
		current.ContractualWorkingDays = *req.ContractualWorkingDays
	}
	if req.SocialSecurityRate != nil {
		current.SocialSecurityRate = *req.SocialSecurityRate
	}
	if req.LeaveAccrualCap != nil {
		current.LeaveAccrualCap = *req.LeaveAccrualCap
	}
	if req.LeaveReferenceDays != nil {
		current.LeaveReferenceDays = *req.LeaveReferenceDays
	}
	if req.SeniorityRatePerYear != nil {
		current.SeniorityRatePerYear = *req.SeniorityRatePerYear
	}
	if req.SeniorityRateCap != nil {
		current.SeniorityRateCap = *req.SeniorityRateCap
	}
	if req.NightShiftRate != nil {
		current.NightShiftRate = *req.NightShiftRate
	}
	if req.HousewifePremium != nil {
		current.HousewifePremium = *req.HousewifePremium
	}
	if req.AccrualCountsSick != nil {
		current.AccrualCountsSick = *req.AccrualCountsSick
	}
	if req.AccrualCountsStoppage != nil {
		current.AccrualCountsStoppage = *req.AccrualCountsStoppage
	}

	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return payroll.SettingsResponse{}, err
	}
	return payroll.NewSettingsResponse(updated), nil
}

// ========== COMPONENTS ==========

func (s *Service) CreateComponent(ctx context.Context, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	created, err := s.componentRepo.CreateComponent(ctx, payroll.Component{
		Name:        req.Name,
		Kind:        payroll.ComponentKind(req.Kind),
		Description: req.Description,
		IsActive:    true,
	})
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return mapComponent(created), nil
}

func (s *Service) ListComponents(ctx context.Context, activeOnly bool) ([]payroll.ComponentResponse, error) {
	components, err := s.componentRepo.ListComponents(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, mapComponent(c))
	}
	return result, nil
}

func (s *Service) AssignComponent(ctx context.Context, req payroll.AssignComponentRequest) (payroll.EmployeeComponent, error) {
	if err := req.Validate(); err != nil {
		return payroll.EmployeeComponent{}, err
	}

	effectiveDate := time.Now().UTC()
	if req.EffectiveDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.EffectiveDate); err == nil {
			effectiveDate = parsed
		}
	}
	var endDate *time.Time
	if req.EndDate != nil {
		if parsed, err := time.Parse("2006-01-02", *req.EndDate); err == nil {
			endDate = &parsed
		}
	}

	return s.componentRepo.AssignToEmployee(ctx, payroll.EmployeeComponent{
		EmployeeID:    req.EmployeeID,
		ComponentID:   req.ComponentID,
		Amount:        req.Amount,
		EffectiveDate: effectiveDate,
		EndDate:       endDate,
	})
}

func (s *Service) ListEmployeeComponents(ctx context.Context, employeeID string, activeOnly bool) ([]payroll.EmployeeComponent, error) {
	return s.componentRepo.GetEmployeeComponents(ctx, employeeID, activeOnly)
}

func (s *Service) RemoveAssignment(ctx context.Context, id string) error {
	return s.componentRepo.RemoveAssignment(ctx, id)
}

func mapComponent(c payroll.Component) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:          c.ID,
		Name:        c.Name,
		Kind:        string(c.Kind),
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}
