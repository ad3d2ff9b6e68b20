package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/samvad-hq/petstore-client/internal/domain"
)

// SnapshotKey identifies one observed state of a pet: its id plus a digest of
// its JSON form. Any change to the pet produces a new key.
func SnapshotKey(pet domain.Pet) string {
	raw, err := json.Marshal(pet)
	if err != nil {
		return fmt.Sprintf("%d", pet.ID)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%d:%s", pet.ID, hex.EncodeToString(sum[:8]))
}
