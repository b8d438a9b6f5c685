package user

import (
	"context"
	"fmt"
	"strings"

	"commit/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func (s *DefaultUserService) Me(ctx context.Context, accountID string) (Profile, error) {
	return s.findByID(ctx, accountID)
}

// UpdateProfile applies the non-nil fields of req that the caller's role may
// change. id, email, password and created_at are never writable here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, caller models.Account, req models.UpdateProfileRequest) (Profile, error) {
	fields, err := profileUpdates(caller.UserType, req)
	if err != nil {
		return nil, err
	}

	if caller.UserType == models.UserTypeProvider {
		err = s.Providers.UpdateFields(ctx, caller.ID, fields)
	} else {
		err = s.Users.UpdateFields(ctx, caller.ID, fields)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.Logger.Info("Profile updated", zap.String("id", caller.ID))
	return s.findByID(ctx, caller.ID)
}

func profileUpdates(userType models.UserType, req models.UpdateProfileRequest) (bson.M, error) {
	fields := bson.M{}
	if req.FullName != nil {
		if err := validateFullName(*req.FullName); err != nil {
			return nil, err
		}
		fields["full_name"] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}

	switch userType {
	case models.UserTypeProvider:
		if req.BusinessName != nil && strings.TrimSpace(*req.BusinessName) != "" {
			fields["business_name"] = strings.TrimSpace(*req.BusinessName)
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Address != nil {
			fields["address"] = *req.Address
		}
		if req.BusinessHours != nil {
			fields["business_hours"] = req.BusinessHours
		}
		if req.ServicesOffered != nil {
			fields["services_offered"] = req.ServicesOffered
		}
		if req.Tags != nil {
			fields["tags"] = req.Tags
		}
	default:
		if req.Preferences != nil {
			fields["preferences"] = req.Preferences
		}
	}

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	return fields, nil
}

// ChangePassword verifies the current password and stores the new one.
func (s *DefaultUserService) ChangePassword(ctx context.Context, caller models.Account, req models.ChangePasswordRequest) error {
	if req.NewPassword == req.OldPassword {
		return ErrSamePassword
	}
	if err := VerifyPasswordComplexity(req.NewPassword); err != nil {
		return err
	}

	profile, err := s.findByID(ctx, caller.ID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	acc := profile.AccountInfo()
	if !checkPassword(acc.PasswordHash, req.OldPassword) {
		return ErrWrongPassword
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: hash: %w", err)
	}
	if acc.UserType == models.UserTypeProvider {
		err = s.Providers.SetPassword(ctx, acc.ID, hash)
	} else {
		err = s.Users.SetPassword(ctx, acc.ID, hash)
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.Logger.Info("Password changed", zap.String("id", acc.ID))
	return nil
}
