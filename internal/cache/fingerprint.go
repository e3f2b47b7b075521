package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"sunfutures/internal/types"
)

// Fingerprint derives the cache key for a forecast request from its full
// normalized input. Maps marshal with sorted keys, so equal inputs always
// hash identically regardless of request field order.
func Fingerprint(loc types.Location, plant types.PlantConfig, losses types.LossConfig, equipmentFiles []types.EquipmentFileRef, horizonDays int) (string, error) {
	refs := make([]map[string]any, 0, len(equipmentFiles))
	for _, ref := range equipmentFiles {
		refs = append(refs, map[string]any{
			"file_id":  ref.FileID,
			"filename": ref.Filename,
			"kind":     string(ref.Kind),
		})
	}
	payload := map[string]any{
		"location":  loc,
		"plant":     plant,
		"losses":    losses,
		"equipment": refs,
		"horizon":   horizonDays,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling fingerprint payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
