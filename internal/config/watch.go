package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch reloads the configuration whenever v's config file changes and
// passes the result to onChange. A reload that fails validation is passed
// as an error and the previous configuration stays in effect.
//
// Watch requires v to have a config file; it is a no-op otherwise.
func Watch(v *viper.Viper, onChange func(cfg *Config, event fsnotify.Event, err error)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := LoadFrom(v)
		onChange(cfg, e, err)
	})
	v.WatchConfig()
}
