package config

import (
	"reflect"

	"github.com/Iron-Ham/tgen/internal/narrative"
	"github.com/go-viper/mapstructure/v2"
)

var speedCurveType = reflect.TypeOf(narrative.SpeedCurve{})

// decodeHook is used for every Unmarshal. It replaces viper's default hook
// chain, so the duration and slice hooks are repeated here.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		speedCurveHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// speedCurveHook decodes the compact "0:0.1,15:0.3" form into a SpeedCurve.
func speedCurveHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != speedCurveType {
			return data, nil
		}
		return narrative.ParseSpeedCurve(data.(string))
	}
}
