package stores

import (
	"github.com/google/uuid"

	"github.com/loopstackhq/loopstack-backend/pkg/db/models"
	"github.com/loopstackhq/loopstack-backend/pkg/types"
)

// StoreHeaderDTO is the store identity block repeated across page payloads.
type StoreHeaderDTO struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Description *string   `json:"description,omitempty"`
	Email       *string   `json:"email,omitempty"`
	LogoURL     *string   `json:"logo,omitempty"`
}

// DetailsDTO is the minimal storefront banner payload.
type DetailsDTO struct {
	StoreName string  `json:"storeName"`
	StoreLogo *string `json:"storeLogo,omitempty"`
}

// AboutPageDTO carries the about document plus the store header.
type AboutPageDTO struct {
	Store    StoreHeaderDTO `json:"store"`
	Username string         `json:"username"`
	AboutUs  types.AboutUs  `json:"aboutUs"`
}

// StatusDTO describes whether the store is currently open.
type StatusDTO struct {
	IsOpen      bool   `json:"isOpen"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	OpeningTime string `json:"openingTime,omitempty"`
	ClosingTime string `json:"closingTime,omitempty"`
}

// NextOpeningDTO names the next day the store opens.
type NextOpeningDTO struct {
	Day       string `json:"day"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// StoreStatusDTO bundles the current status with the upcoming opening.
type StoreStatusDTO struct {
	Current     StatusDTO       `json:"current"`
	NextOpening *NextOpeningDTO `json:"nextOpening,omitempty"`
}

// ContactPageDTO is the full contact page payload.
type ContactPageDTO struct {
	Store         StoreHeaderDTO        `json:"store"`
	Username      string                `json:"username"`
	Contact       types.ContactChannels `json:"contact"`
	BusinessHours types.BusinessHours   `json:"businessHours"`
	QuickHelp     types.QuickHelp       `json:"quickHelp"`
	StoreStatus   StoreStatusDTO        `json:"storeStatus"`
}

// SocialLinkDTO is one normalized, classified outbound link.
type SocialLinkDTO struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	OriginalURL string `json:"originalUrl"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// SocialLinksPageDTO is the link-in-bio page payload.
type SocialLinksPageDTO struct {
	Store       StoreHeaderDTO  `json:"store"`
	Username    string          `json:"username"`
	SocialLinks []SocialLinkDTO `json:"socialLinks"`
}

func headerFromModel(m *models.Store) StoreHeaderDTO {
	return StoreHeaderDTO{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Description: m.Description,
		Email:       m.Email,
		LogoURL:     m.LogoURL,
	}
}
