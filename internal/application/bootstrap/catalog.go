package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/buildingai/cozepkg/internal/domain/aicatalog"
)

type modelConfigFileBody struct {
	Configs []providerEntry `json:"configs"`
}

type providerEntry struct {
	Provider            string       `json:"provider"`
	Label               string       `json:"label"`
	IconURL             string       `json:"icon_url"`
	SupportedModelTypes []string     `json:"supported_model_types"`
	Models              []modelEntry `json:"models"`
}

type modelEntry struct {
	Model           string                 `json:"model"`
	Label           string                 `json:"label"`
	ModelType       string                 `json:"model_type"`
	Features        []string               `json:"features"`
	ModelProperties map[string]interface{} `json:"model_properties"`
}

type keyTemplateEntry struct {
	Name        string          `json:"name"`
	Icon        string          `json:"icon"`
	Type        string          `json:"type"`
	TagName     string          `json:"tagName"`
	FieldConfig json.RawMessage `json:"fieldConfig"`
	IsEnabled   *bool           `json:"isEnabled"`
	SortOrder   int             `json:"sortOrder"`
}

func (i *Installer) seedCatalog(ctx context.Context) error {
	data, source, err := i.deps.Assets.Install(modelConfigFile)
	if err != nil {
		return err
	}
	var body modelConfigFileBody
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	var providers, models int
	for sort, entry := range body.Configs {
		p, err := aicatalog.NewProvider(entry.Provider, entry.Label, entry.IconURL, entry.SupportedModelTypes)
		if err != nil {
			i.logger.Warnw("skipping provider", "provider", entry.Provider, "error", err)
			continue
		}
		p.IsActive = true
		p.SortOrder = sort
		inserted, err := i.deps.Catalog.UpsertProvider(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to upsert provider %s: %w", entry.Provider, err)
		}
		if inserted {
			providers++
		}

		for msort, me := range entry.Models {
			m, err := aicatalog.NewModel(p.ID, me.Model, me.Label, me.ModelType, me.Features, me.ModelProperties)
			if err != nil {
				i.logger.Warnw("skipping model", "provider", entry.Provider, "model", me.Model, "error", err)
				continue
			}
			m.SortOrder = msort
			inserted, err := i.deps.Catalog.UpsertModel(ctx, m)
			if err != nil {
				return fmt.Errorf("failed to upsert model %s/%s: %w", entry.Provider, me.Model, err)
			}
			if inserted {
				models++
			}
		}
	}

	i.logger.Infow("ai catalogue seeded", "source", source, "new_providers", providers, "new_models", models)
	return nil
}

func (i *Installer) seedKeyTemplates(ctx context.Context) error {
	data, source, err := i.deps.Assets.Install(keyTemplateFile)
	if err != nil {
		return err
	}
	var entries []keyTemplateEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	created := 0
	for _, e := range entries {
		if e.Name == "" {
			continue
		}
		t := &aicatalog.KeyTemplate{
			Name:        e.Name,
			Type:        e.Type,
			TagName:     e.TagName,
			Icon:        e.Icon,
			FieldConfig: e.FieldConfig,
			IsEnabled:   e.IsEnabled == nil || *e.IsEnabled,
			SortOrder:   e.SortOrder,
		}
		if len(t.FieldConfig) == 0 {
			t.FieldConfig = json.RawMessage("[]")
		}
		inserted, err := i.deps.Catalog.UpsertKeyTemplate(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to upsert key template %s: %w", e.Name, err)
		}
		if inserted {
			created++
		}
	}
	i.logger.Infow("key templates seeded", "source", source, "created", created, "total", len(entries))
	return nil
}
