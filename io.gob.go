package pastas

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/clau1313/pastas/rfunc"
	"github.com/clau1313/pastas/stress"
)

func init() {
	gob.Register(&rfunc.Gamma{})
	gob.Register(&rfunc.Exponential{})
	gob.Register(&rfunc.Hantush{})
	gob.Register(&rfunc.Theis{})
	gob.Register(&rfunc.One{})
	gob.Register(&stress.Single{})
	gob.Register(&stress.Dual{})
	gob.Register(&stress.Recharge{})
	gob.Register(&stress.Well{})
	gob.Register(&stress.Step{})
	gob.Register(stress.Linear{})
}

// SaveGob persists the model, its stress series and any fit to file.
func (m *Model) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" model.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf(" model.SaveGob %v", err)
	}
	return f.Close()
}

// LoadGobModel restores a model saved with SaveGob.
func LoadGobModel(fp string) (*Model, error) {
	var m Model
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return &m, nil
}
