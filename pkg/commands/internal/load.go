package internal

import (
	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
	"github.com/NicholasDeLioncourt/phonix/pkg/phonology"
)

// LoadPhonology loads the definition at path. An empty path or "std"
// selects the embedded standard definition.
func LoadPhonology(path string) (*phonology.Phonology, error) {
	logger := logging.GetLogger("core.commands")

	if path == "" || path == phonology.StdName {
		logger.Debug().Msg("Using standard definition")
		return phonology.Std()
	}

	logger.Debug().Str("definition", path).Msg("Loading definition")
	p, err := phonology.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("definition", path).
		Str("name", p.Name).
		Int("rules", len(p.Rules.Rules())).
		Msg("Definition loaded")
	return p, nil
}
