// Package config fills env-tagged structs from the process environment.
//
// The first Load call reads a .env file from the working directory when one
// exists (godotenv, never overriding variables already set). Structs are then
// parsed with caarlos0/env, so `env`, `envDefault` and `required` tags apply.
//
//	var cfg mongo.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Results are cached per struct type: a second Load of the same type copies
// the cached value instead of parsing again. Tests that change the environment
// between loads call Reset.
package config
