package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/myeasyserver/myeasyserver/internal/logger"
)

// configBuilder threads a tree through the precedence layers. Every with*
// step applies one layer on top of the previous ones; once a step fails the
// remaining ones are skipped and build reports the joined errors.
type configBuilder struct {
	schema *Schema
	tree   Tree
	log    *logger.Logger
	err    error
}

func newConfigBuilder(schema *Schema, log *logger.Logger) *configBuilder {
	return &configBuilder{
		schema: schema,
		tree:   make(Tree),
		log:    log,
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}
	return NewConfig(b.schema, b.tree), nil
}

func (b *configBuilder) apply(layer string, src Source) *configBuilder {
	if b.err != nil {
		return b
	}

	tree, err := Override(b.tree, b.schema, src, true)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s layer: %w", layer, err))
		return b
	}

	b.tree = tree
	b.log.Debug().Str("layer", layer).Msg("configuration layer applied")
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.apply("defaults", NewDefaultSource(b.schema))
}

func (b *configBuilder) withFile(layer string, file *PersistedFile) *configBuilder {
	if file == nil {
		return b
	}
	b.log.Debug().Str("layer", layer).Str("path", file.Path()).Bool("new", file.IsNew()).
		Msg("reading configuration file")
	return b.apply(layer, file)
}

func (b *configBuilder) withEnv(links Links, environ []string) *configBuilder {
	return b.apply("env", NewEnvSource(links, environ))
}

func (b *configBuilder) withDotenv(links Links, path string, environ []string) *configBuilder {
	if b.err != nil {
		return b
	}

	src, err := LoadDotenv(links, path, environ)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.log.Debug().Str("path", path).Msg("reading dotenv file")
	return b.apply("dotenv", src)
}

func (b *configBuilder) withFlags(links Links, flags *pflag.FlagSet) *configBuilder {
	return b.apply("flags", NewFlagSource(links, flags))
}
