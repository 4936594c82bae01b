package cfgloader

import (
	"gopkg.in/yaml.v3"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/mask"
)

// Print logs config as YAML through the global logger. Fields tagged
// `mask:"true"` are masked.
func Print(config any) {
	log := logger.Named("cfgloader")

	out, err := yaml.Marshal(mask.Struct(config))
	if err != nil {
		log.Warnx(err)
		return
	}
	log.Infof("loaded config:\n%s", string(out))
}
