package aicatalog

import (
	"encoding/json"
	"fmt"
	"time"
)

// Provider is an AI vendor known to the platform.
type Provider struct {
	ID                  string
	Provider            string
	Name                string
	IconURL             string
	SupportedModelTypes []string
	IsBuiltIn           bool
	IsActive            bool
	SortOrder           int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Model is a model offered by a provider, unique per (ProviderID, Model).
type Model struct {
	ID          string
	ProviderID  string
	Model       string
	Name        string
	ModelType   string
	Features    []string
	ContextSize int
	Config      map[string]interface{}
	IsBuiltIn   bool
	IsActive    bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// KeyTemplate describes the credential form for one kind of secret.
type KeyTemplate struct {
	ID          string
	Name        string
	Type        string
	TagName     string
	Icon        string
	FieldConfig json.RawMessage
	IsEnabled   bool
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewProvider(code, name, iconURL string, modelTypes []string) (*Provider, error) {
	if code == "" {
		return nil, fmt.Errorf("provider code is required")
	}
	if name == "" {
		name = code
	}
	if modelTypes == nil {
		modelTypes = []string{}
	}
	return &Provider{
		Provider:            code,
		Name:                name,
		IconURL:             iconURL,
		SupportedModelTypes: modelTypes,
		IsBuiltIn:           true,
	}, nil
}

func NewModel(providerID, model, name, modelType string, features []string, properties map[string]interface{}) (*Model, error) {
	if providerID == "" || model == "" {
		return nil, fmt.Errorf("provider ID and model are required")
	}
	if name == "" {
		name = model
	}
	if features == nil {
		features = []string{}
	}
	if properties == nil {
		properties = map[string]interface{}{}
	}
	m := &Model{
		ProviderID: providerID,
		Model:      model,
		Name:       name,
		ModelType:  modelType,
		Features:   features,
		Config:     properties,
		IsBuiltIn:  true,
		IsActive:   true,
	}
	if size, ok := properties["context_size"].(float64); ok {
		m.ContextSize = int(size)
		m.Config["maxContext"] = int(size)
	}
	return m, nil
}
