package cli

import (
	"fmt"

	"github.com/ppiankov/edututor/internal/intent"
	"github.com/ppiankov/edututor/internal/llm"
	"github.com/ppiankov/edututor/internal/policy"
	"github.com/ppiankov/edututor/internal/store"
	"github.com/ppiankov/edututor/internal/tutor"
)

// buildTutor assembles the pipeline from config paths. The caller owns
// the returned store and must close it.
func buildTutor(rulesPath, policyPath, dbPath string, verbose bool) (*tutor.Tutor, *store.Store, error) {
	intentCfg, err := intent.LoadConfig(rulesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load rules config: %w", err)
	}
	policyCfg, err := policy.LoadConfig(policyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load policy config: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open conversation store: %w", err)
	}

	tut, err := tutor.New(tutor.Config{
		Provider: llm.FromEnv(),
		Store:    st,
		Intent:   intentCfg,
		Policy:   policyCfg,
		Verbose:  verbose,
	})
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("failed to build tutor: %w", err)
	}
	return tut, st, nil
}
