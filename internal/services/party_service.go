package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "cashbook/internal/errors"
	"cashbook/internal/models"
	"cashbook/internal/pagination"
)

// partyService handles party-related business logic.
type partyService struct {
	db *gorm.DB
}

// NewPartyService creates a new PartyServicer.
func NewPartyService(db *gorm.DB) PartyServicer {
	return &partyService{db: db}
}

// CreateParty creates a new payer/payee counterpart. Names are not unique;
// two parties may share a name and differ by mobile number.
func (s *partyService) CreateParty(name, mobileNumber string) (*models.Party, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "party name is required")
	}

	party := &models.Party{Name: name, MobileNumber: mobileNumber}
	if err := s.db.Create(party).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return party, nil
}

// ListParties returns parties ordered by name, optionally filtered by a
// case-insensitive name prefix search.
func (s *partyService) ListParties(page pagination.PageRequest, search string) (*pagination.PageResponse[models.Party], error) {
	page.Defaults()

	base := s.db.Model(&models.Party{})
	if search != "" {
		base = base.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var parties []models.Party
	if err := base.Scopes(pagination.Paginate(page)).Order("name asc").Find(&parties).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(parties, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetPartyByID retrieves a party by ID.
func (s *partyService) GetPartyByID(id uint) (*models.Party, error) {
	var party models.Party
	if err := s.db.First(&party, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPartyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &party, nil
}

// UpdateParty applies the provided field updates.
func (s *partyService) UpdateParty(id uint, name, mobileNumber *string) (*models.Party, error) {
	party, err := s.GetPartyByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil && *name != "" {
		updates["name"] = *name
	}
	if mobileNumber != nil {
		updates["mobile_number"] = *mobileNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(party).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return party, nil
}

// DeleteParty removes a party. Transactions drop the reference but keep the
// denormalized party name and mobile columns for historical records.
func (s *partyService) DeleteParty(id uint) error {
	party, err := s.GetPartyByID(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).Where("party_id = ?", id).
			Update("party_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(party).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
