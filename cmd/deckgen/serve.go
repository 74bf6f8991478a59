package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-deckgen/internal/server"
)

// runServeCmd runs the HTTP adapter until ctx is done and returns an exit code.
func runServeCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	ctx = withLogger(ctx, newLogger(env.Stderr, serveLogLevel(flags.common)))
	if err := runServe(ctx, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runServe builds the generator pool and serves until ctx is done.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	logger := loggerFromContext(ctx)

	if err := validateWorkers(flags.gen.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	opts, poolSize, err := buildGeneratorOptions(flags.gen, cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if flags.addr != "" {
		addr = flags.addr
	}

	pool := env.NewPool(poolSize, opts...)
	defer pool.Close()
	logger.Info("starting server", "addr", addr, "workers", poolSize)

	srv := server.New(server.Options{
		Generator:    &pooledGenerator{pool: pool},
		Logger:       logger,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})
	return srv.ListenAndServe(ctx, addr)
}
