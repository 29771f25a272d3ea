package models

import "time"

// Package пакет услуг студии, управляется администратором.
type Package struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        int      `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
	DisplayOrder int      `json:"display_order"`
	IsActive     bool     `json:"is_active"`
}

// DummyPackage используется для приема данных пакета из JSON-запроса.
type DummyPackage struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Price        int      `json:"price" validate:"required,gt=0"`
	DurationDays int      `json:"duration_days" validate:"omitempty,gt=0"`
	Features     []string `json:"features"`
	DisplayOrder int      `json:"display_order"`
	IsActive     *bool    `json:"is_active"`
}

// PortfolioItem работа из портфолио студии.
type PortfolioItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	ProjectURL   string    `json:"project_url"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyPortfolioItem используется для приема данных работы из JSON-запроса.
type DummyPortfolioItem struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url" validate:"required"`
	Category     string `json:"category"`
	ProjectURL   string `json:"project_url"`
	DisplayOrder int    `json:"display_order"`
	IsActive     *bool  `json:"is_active"`
}
