package cliparse

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/meeting-intel/recording"
	"github.com/danielhkuo/meeting-intel/shell"
	"github.com/danielhkuo/meeting-intel/tabs"
	"github.com/danielhkuo/meeting-intel/upload"
)

// Policy holds the interaction constants. They are product policy, not
// code, so they can be tuned per deployment from a YAML file.
type Policy struct {
	DismissThresholdPx   float64       `yaml:"dismiss_threshold_px"`
	SwipeOpenThresholdPx float64       `yaml:"swipe_open_threshold_px"`
	BackToTopPx          float64       `yaml:"back_to_top_px"`
	TrialQuota           time.Duration `yaml:"trial_quota"`
	AcceptedExtensions   []string      `yaml:"accepted_extensions"`
	AdvertisedMaxBytes   uint64        `yaml:"advertised_max_bytes"`
}

// DefaultPolicy collects the defaults each state machine ships with.
func DefaultPolicy() Policy {
	sp := shell.DefaultPolicy()
	up := upload.DefaultPolicy()
	return Policy{
		DismissThresholdPx:   sp.DismissThreshold,
		SwipeOpenThresholdPx: sp.SwipeOpenThreshold,
		BackToTopPx:          tabs.DefaultPolicy().BackToTopThreshold,
		TrialQuota:           recording.DefaultTrialTotal,
		AcceptedExtensions:   up.AcceptedExtensions,
		AdvertisedMaxBytes:   up.AdvertisedMaxBytes,
	}
}

// LoadPolicy reads path over the defaults. An empty path means defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file: %w", err)
	}
	if err := p.validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (p Policy) validate() error {
	if p.DismissThresholdPx <= 0 || p.SwipeOpenThresholdPx <= 0 {
		return errors.New("gesture thresholds must be positive")
	}
	if p.BackToTopPx < 0 {
		return errors.New("back_to_top_px must not be negative")
	}
	if p.TrialQuota <= 0 {
		return errors.New("trial_quota must be positive")
	}
	return nil
}
