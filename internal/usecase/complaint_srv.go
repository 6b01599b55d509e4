package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"

	"mess-review/internal/data/entity"
	"mess-review/internal/data/repository"
	"mess-review/internal/dto/request"
	"mess-review/internal/dto/response"
	"mess-review/pkg/mailer"
	"mess-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ComplaintService interface {
	CreateComplaint(ctx context.Context, userID uuid.UUID, req *request.ComplaintRequest) (*response.ComplaintResponse, error)

	// Admin
	GetAllComplaints(ctx context.Context) ([]response.ComplaintResponse, error)
	GetComplaintsByOutlet(ctx context.Context, outletID string) ([]response.ComplaintResponse, error)
	ResolveComplaint(ctx context.Context, complaintID string) (*response.ComplaintResponse, error)
	DeleteComplaint(ctx context.Context, complaintID string) error
}

type complaintService struct {
	repo   *repository.Repository
	mailer mailer.Sender
	admins []string
	log    *zap.Logger

	// async runs background work, tests swap it for a synchronous call
	async func(func())
}

func NewComplaintService(repo *repository.Repository, config *utils.Config, sender mailer.Sender, log *zap.Logger) ComplaintService {
	return &complaintService{
		repo:   repo,
		mailer: sender,
		admins: config.Auth.AdminEmails,
		log:    log.With(zap.String("service", "complaint")),
		async:  func(f func()) { go f() },
	}
}

func (s *complaintService) CreateComplaint(ctx context.Context, userID uuid.UUID, req *request.ComplaintRequest) (*response.ComplaintResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create complaint validation failed", zap.Error(err))
		return nil, err
	}

	outletID, err := parseID("outlet", req.OutletID)
	if err != nil {
		return nil, err
	}

	text := utils.SanitizeText(req.ComplaintText)
	if text == "" {
		return nil, &ValidationError{Fields: map[string]string{"ComplaintText": "ComplaintText is required"}}
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find complaint author", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find author: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	outlet, err := s.repo.Outlet.FindByID(ctx, outletID)
	if err != nil {
		s.log.Error("Failed to find outlet for complaint", zap.Error(err), zap.String("outlet_id", req.OutletID))
		return nil, fmt.Errorf("find outlet: %w", err)
	}
	if outlet == nil {
		return nil, fmt.Errorf("%w: outlet %s", ErrNotFound, req.OutletID)
	}

	now := utils.Now()
	complaint := &entity.Complaint{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		OutletID:      outletID,
		ComplaintText: text,
		IsAnonymous:   req.IsAnonymous,
		AuthorName:    user.Name,
		AuthorEmail:   user.Email,
		OutletName:    outlet.Name,
	}

	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.log.Error("Failed to create complaint", zap.Error(err), zap.String("outlet_id", req.OutletID))
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.log.Info("Complaint created",
		zap.String("complaint_id", complaint.ID.String()),
		zap.String("outlet_id", req.OutletID),
		zap.Bool("anonymous", complaint.IsAnonymous),
	)

	resp := response.ComplaintToResponse(complaint)
	s.notifyAdmins(resp)

	return &resp, nil
}

// notifyAdmins emails the redacted complaint to every configured admin.
func (s *complaintService) notifyAdmins(c response.ComplaintResponse) {
	if s.mailer == nil || !s.mailer.Enabled() || len(s.admins) == 0 {
		return
	}

	subject := fmt.Sprintf("New complaint for %s", c.OutletName)
	body := fmt.Sprintf(
		"<p><b>Outlet:</b> %s</p><p><b>From:</b> %s</p><p>%s</p>",
		html.EscapeString(c.OutletName),
		html.EscapeString(c.UserName),
		html.EscapeString(c.ComplaintText),
	)
	to := append([]string(nil), s.admins...)

	s.async(func() {
		if err := s.mailer.Send(to, subject, body); err != nil {
			s.log.Warn("Failed to send complaint notification", zap.Error(err), zap.String("complaint_id", c.ID))
			return
		}
		s.log.Debug("Complaint notification sent", zap.String("complaint_id", c.ID), zap.Int("recipients", len(to)))
	})
}

func (s *complaintService) GetAllComplaints(ctx context.Context) ([]response.ComplaintResponse, error) {
	complaints, err := s.repo.Complaint.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get complaints", zap.Error(err))
		return nil, fmt.Errorf("get complaints: %w", err)
	}
	return response.ComplaintsToResponse(complaints), nil
}

func (s *complaintService) GetComplaintsByOutlet(ctx context.Context, outletID string) ([]response.ComplaintResponse, error) {
	id, err := parseID("outlet", outletID)
	if err != nil {
		return nil, err
	}

	complaints, err := s.repo.Complaint.FindByOutletID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get outlet complaints", zap.Error(err), zap.String("outlet_id", outletID))
		return nil, fmt.Errorf("get complaints: %w", err)
	}
	return response.ComplaintsToResponse(complaints), nil
}

func (s *complaintService) ResolveComplaint(ctx context.Context, complaintID string) (*response.ComplaintResponse, error) {
	id, err := parseID("complaint", complaintID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Complaint.MarkResolved(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: complaint %s", ErrNotFound, complaintID)
		}
		s.log.Error("Failed to resolve complaint", zap.Error(err), zap.String("complaint_id", complaintID))
		return nil, fmt.Errorf("resolve complaint: %w", err)
	}

	complaint, err := s.repo.Complaint.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("%w: complaint %s", ErrNotFound, complaintID)
	}

	s.log.Info("Complaint resolved", zap.String("complaint_id", complaintID))

	resp := response.ComplaintToResponse(complaint)
	return &resp, nil
}

func (s *complaintService) DeleteComplaint(ctx context.Context, complaintID string) error {
	id, err := parseID("complaint", complaintID)
	if err != nil {
		return err
	}

	if err := s.repo.Complaint.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: complaint %s", ErrNotFound, complaintID)
		}
		s.log.Error("Failed to delete complaint", zap.Error(err), zap.String("complaint_id", complaintID))
		return fmt.Errorf("delete complaint: %w", err)
	}

	s.log.Info("Complaint deleted", zap.String("complaint_id", complaintID))
	return nil
}
