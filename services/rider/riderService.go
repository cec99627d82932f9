package rider

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	riderModel "parcel-delivery/models/rider"
	"parcel-delivery/repositories"
)

const compensationTimeout = 5 * time.Second

// StatusResult reports which documents a status change touched.
type StatusResult struct {
	RiderUpdated bool
	UserUpdated  bool
}

// Service moves riders through the approval workflow.
type Service struct {
	riders repositories.RiderRepository
	users  repositories.UserRepository
	now    func() time.Time
}

func NewRiderService(riders repositories.RiderRepository, users repositories.UserRepository) *Service {
	return &Service{
		riders: riders,
		users:  users,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetStatus updates the rider and, on approval, promotes the user with email to
// the rider role. If the promotion fails the rider keeps its previous status.
// An unknown rider id yields an error wrapping repositories.ErrNotFound.
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status riderModel.Status, email string) (*StatusResult, error) {
	previous, err := s.riders.UpdateStatus(ctx, id, status, s.now())
	if err != nil {
		return nil, fmt.Errorf("update rider %s: %w", id.Hex(), err)
	}

	result := &StatusResult{RiderUpdated: true}
	if status != riderModel.StatusApproved {
		return result, nil
	}

	matched, err := s.users.SetRoleByEmail(ctx, email, constants.RoleRider)
	if err != nil {
		s.restoreStatus(ctx, id, previous)
		return nil, fmt.Errorf("promote user to rider: %w", err)
	}
	if matched == 0 {
		logger.Warning("Rider " + id.Hex() + " approved but no user has email " + email)
	}

	result.UserUpdated = matched > 0
	return result, nil
}

func (s *Service) restoreStatus(ctx context.Context, id primitive.ObjectID, previous riderModel.Status) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	if _, err := s.riders.UpdateStatus(ctx, id, previous, s.now()); err != nil {
		logger.Error("Failed to restore rider "+id.Hex()+" to "+previous.String(), err)
		return
	}
	logger.Warning("Restored rider " + id.Hex() + " to " + previous.String())
}
