package cms

import (
	"context"

	"github.com/taibui324/la-gougah/backend/access"
	"github.com/taibui324/la-gougah/backend/cache"
	"github.com/taibui324/la-gougah/backend/models"
)

const maxInquiriesListed = 200

type ContactSettingsInput struct {
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	WorkingHours *string `json:"workingHours" validate:"omitempty,max=200"`
	Facebook     *string `json:"facebook" validate:"omitempty,url"`
	Instagram    *string `json:"instagram" validate:"omitempty,url"`
	Youtube      *string `json:"youtube" validate:"omitempty,url"`
	Tiktok       *string `json:"tiktok" validate:"omitempty,url"`
	Zalo         *string `json:"zalo" validate:"omitempty,max=200"`
}

type InquiryInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=32"`
	Message string `json:"message" validate:"required,max=5000"`
}

// GetContactSettings is public. Before anything is saved it returns an empty document.
func (s *Service) GetContactSettings(ctx context.Context) (*models.ContactSettings, error) {
	return cached(ctx, s, cache.GroupContact, "settings", func() (*models.ContactSettings, error) {
		cs, err := s.store.ContactSettings(ctx)
		if err != nil {
			return nil, err
		}
		if cs == nil {
			cs = &models.ContactSettings{}
		}
		return cs, nil
	})
}

// UpdateContactSettings patches the first-found settings document, creating it if needed.
func (s *Service) UpdateContactSettings(ctx context.Context, in ContactSettingsInput) (*models.ContactSettings, error) {
	p, err := access.Authorize(ctx, access.OpUpdateContactSettings)
	if err != nil {
		return nil, err
	}
	cs, err := s.store.ContactSettings(ctx)
	if err != nil {
		return nil, err
	}
	if cs == nil {
		cs = &models.ContactSettings{}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = trimmed(v)
		}
	}
	set(&cs.Email, in.Email)
	set(&cs.Phone, in.Phone)
	set(&cs.Address, in.Address)
	set(&cs.WorkingHours, in.WorkingHours)
	set(&cs.Facebook, in.Facebook)
	set(&cs.Instagram, in.Instagram)
	set(&cs.Youtube, in.Youtube)
	set(&cs.Tiktok, in.Tiktok)
	set(&cs.Zalo, in.Zalo)
	cs.UpdatedBy = p.UserID
	cs.UpdatedAt = s.now()

	id, err := s.store.SaveContactSettings(ctx, cs)
	if err != nil {
		return nil, err
	}
	cs.ID = id
	s.invalidate(ctx, cache.GroupContact)
	s.log.Info("contact settings updated", "by", p.Email)
	return cs, nil
}

// SubmitInquiry records a contact-form message and forwards it to the
// contact email when a mailer is configured. Delivery failures are logged;
// the inquiry is kept either way.
func (s *Service) SubmitInquiry(ctx context.Context, in InquiryInput) (*models.ContactInquiry, error) {
	name, email, message := trimmed(&in.Name), normalizeEmail(&in.Email), trimmed(&in.Message)
	if name == "" || email == "" || message == "" {
		return nil, invalid("name, email and message are required")
	}
	inq := &models.ContactInquiry{
		Name:      name,
		Email:     email,
		Phone:     trimmed(&in.Phone),
		Message:   message,
		CreatedAt: s.now(),
	}
	if cs, err := s.store.ContactSettings(ctx); err != nil {
		s.log.Warn("contact settings unavailable for inquiry", "error", err)
	} else if cs != nil {
		inq.ToEmail = cs.Email
	}
	if s.mailer != nil && inq.ToEmail != "" {
		if err := s.mailer.SendInquiry(ctx, inq); err != nil {
			s.log.Error("inquiry mail failed", "to", inq.ToEmail, "error", err)
		} else {
			inq.Delivered = true
		}
	}
	id, err := s.store.InsertContactInquiry(ctx, inq)
	if err != nil {
		return nil, err
	}
	inq.ID = id
	s.log.Info("contact inquiry received", "id", id.Hex(), "delivered", inq.Delivered)
	return inq, nil
}

func (s *Service) ListInquiries(ctx context.Context) ([]models.ContactInquiry, error) {
	if _, err := access.Authorize(ctx, access.OpListInquiries); err != nil {
		return nil, err
	}
	return s.store.ListContactInquiries(ctx, maxInquiriesListed)
}
