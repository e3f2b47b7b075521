package equipment

import (
	"context"
	"fmt"
	"log/slog"

	"sunfutures/internal/types"
)

// FileFetcher reads previously uploaded equipment file bytes by id.
type FileFetcher interface {
	GetBytes(ctx context.Context, fileID, filename string) ([]byte, error)
}

// Service performs best-effort parameter extraction over the equipment
// files referenced by a request. It never fails: missing files and parse
// errors degrade to "no refinement" with a note.
type Service interface {
	Extract(ctx context.Context, refs []types.EquipmentFileRef) (types.EquipmentProfile, []string)
}

type extractorService struct {
	files   FileFetcher
	parsers map[types.FileKind]Parser
	logger  *slog.Logger
}

func NewExtractorService(files FileFetcher, logger *slog.Logger) Service {
	return &extractorService{
		files: files,
		parsers: map[types.FileKind]Parser{
			types.FileKindPAN: PANParser{},
			types.FileKindOND: ONDParser{},
		},
		logger: logger.With("component", "equipment_extractor"),
	}
}

func (s *extractorService) Extract(ctx context.Context, refs []types.EquipmentFileRef) (types.EquipmentProfile, []string) {
	var profile types.EquipmentProfile
	var notes []string
	for _, ref := range refs {
		parser, ok := s.parsers[ref.Kind]
		if !ok {
			continue
		}
		data, err := s.files.GetBytes(ctx, ref.FileID, ref.Filename)
		if err != nil || len(data) == 0 {
			s.logger.Warn("equipment file unavailable, using model defaults", "file_id", ref.FileID, "filename", ref.Filename, "error", err)
			notes = append(notes, fmt.Sprintf("equipment file %s not available, model defaults used", ref.Filename))
			continue
		}
		parsed, err := parser.Parse(data)
		if err != nil {
			s.logger.Warn("equipment file parse failed, using model defaults", "file_id", ref.FileID, "filename", ref.Filename, "error", err)
			notes = append(notes, fmt.Sprintf("equipment file %s could not be parsed, model defaults used", ref.Filename))
			continue
		}
		if parsed.Empty() {
			notes = append(notes, fmt.Sprintf("no usable parameters found in %s", ref.Filename))
			continue
		}
		profile = profile.Merge(parsed)
	}
	return profile, notes
}
