package timeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"tlstory/internal/domain"
	"tlstory/internal/domain/schema"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/seed"
)

// importService implements the ImportService interface
type importService struct {
	configService svc.ConfigService
	eventService  svc.EventService
	eraService    svc.EraService
	logger        *slog.Logger
}

// NewImportService creates a new import service. Rows go through the entity
// services so imports get the same validation as API writes.
func NewImportService(
	configService svc.ConfigService,
	eventService svc.EventService,
	eraService svc.EraService,
	logger *slog.Logger,
) svc.ImportService {
	return &importService{
		configService: configService,
		eventService:  eventService,
		eraService:    eraService,
		logger:        logger,
	}
}

// Merge applies the config section and adds every event and era
func (s *importService) Merge(ctx context.Context, file *seed.File) (*svc.ImportResult, error) {
	plan, err := checkFile(file)
	if err != nil {
		return nil, err
	}

	result := &svc.ImportResult{}
	if err := s.apply(ctx, plan, result); err != nil {
		return result, err
	}

	s.logger.Info("import merged",
		"config_updated", result.ConfigUpdated,
		"events", result.Events,
		"eras", result.Eras,
	)

	return result, nil
}

// Replace hard-deletes all events and eras, then merges. The whole file is
// checked before anything is deleted.
func (s *importService) Replace(ctx context.Context, file *seed.File) (*svc.ImportResult, error) {
	plan, err := checkFile(file)
	if err != nil {
		return nil, err
	}

	result := &svc.ImportResult{}

	events, err := s.eventService.ListEvents(ctx, false)
	if err != nil {
		return result, fmt.Errorf("list events: %w", err)
	}
	for _, e := range events {
		if err := s.eventService.DeleteEvent(ctx, e.ID, false); err != nil {
			return result, fmt.Errorf("delete event %d: %w", e.ID, err)
		}
		result.RemovedEvents++
	}

	eras, err := s.eraService.ListEras(ctx, false)
	if err != nil {
		return result, fmt.Errorf("list eras: %w", err)
	}
	for _, e := range eras {
		if err := s.eraService.DeleteEra(ctx, e.ID, false); err != nil {
			return result, fmt.Errorf("delete era %d: %w", e.ID, err)
		}
		result.RemovedEras++
	}

	if err := s.apply(ctx, plan, result); err != nil {
		return result, err
	}

	s.logger.Info("import replaced",
		"removed_events", result.RemovedEvents,
		"removed_eras", result.RemovedEras,
		"events", result.Events,
		"eras", result.Eras,
	)

	return result, nil
}

// importPlan is a seed file that passed every check
type importPlan struct {
	config *svc.UpdateConfigRequest
	events []svc.Fields
	eras   []svc.Fields
}

// checkFile runs the create validation on every row and the config section so
// a bad file is rejected before any row is written or removed.
func checkFile(file *seed.File) (*importPlan, error) {
	if file == nil || file.Empty() {
		return nil, fmt.Errorf("%w: import file is empty", domain.ErrValidation)
	}

	plan := &importPlan{}
	if len(file.Config) > 0 {
		req, err := configRequest(file.Config)
		if err != nil {
			return nil, err
		}
		if err := validateConfigRequest(req); err != nil {
			return nil, fmt.Errorf("%w: config: %v", domain.ErrValidation, err)
		}
		if req.TitleHeadline != nil || req.TitleText != nil || req.Scale != nil {
			plan.config = req
		}
	}

	var err error
	if plan.events, err = checkRows("events", schema.Events, file.Events); err != nil {
		return nil, err
	}
	if plan.eras, err = checkRows("eras", schema.Eras, file.Eras); err != nil {
		return nil, err
	}
	return plan, nil
}

func checkRows(section string, table *schema.Table, rows []map[string]any) ([]svc.Fields, error) {
	out := make([]svc.Fields, 0, len(rows))
	seen := make(map[any]int)
	for i, row := range rows {
		fields, err := rowFields(table, row)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		values, err := prepareFields(table, fields, true)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}
		if key, ok := values.Get(schema.ColUniqueID); ok && key != "" {
			if first, dup := seen[key]; dup {
				return nil, fmt.Errorf("%w: %s[%d]: unique_id %v repeats %s[%d]",
					domain.ErrValidation, section, i, key, section, first)
			}
			seen[key] = i
		}
		out = append(out, fields)
	}
	return out, nil
}

func (s *importService) apply(ctx context.Context, plan *importPlan, result *svc.ImportResult) error {
	if plan.config != nil {
		if _, err := s.configService.UpdateConfig(ctx, plan.config); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		result.ConfigUpdated = true
	}

	for i, fields := range plan.events {
		if _, err := s.eventService.CreateEvent(ctx, fields); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
		result.Events++
	}

	for i, fields := range plan.eras {
		if _, err := s.eraService.CreateEra(ctx, fields); err != nil {
			return fmt.Errorf("eras[%d]: %w", i, err)
		}
		result.Eras++
	}

	return nil
}

// rowFields converts a seed row into request fields, dropping store-managed
// columns such as id and timestamps so backups can be re-imported.
func rowFields(table *schema.Table, row map[string]any) (svc.Fields, error) {
	fields := make(svc.Fields, len(row))
	for key, v := range row {
		if f, ok := table.Field(key); ok && f.ReadOnly {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", domain.ErrValidation, key, err)
		}
		fields[key] = raw
	}
	return fields, nil
}

// configRequest decodes the config section, rejecting unknown keys
func configRequest(row map[string]any) (*svc.UpdateConfigRequest, error) {
	fields, err := rowFields(schema.Config, row)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var req svc.UpdateConfigRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: config: %v", domain.ErrValidation, err)
	}
	return &req, nil
}
