// Heartscene opens a window showing the animated heart scene.
//
// Click or tap to launch a particle burst, drag to orbit, scroll to zoom,
// press C to clear bursts, F to toggle the FPS overlay and P to save a
// screenshot.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/phanxgames/heartscene"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (overrides HEARTSCENE_CONFIG)")
	seed := flag.Uint64("seed", 0, "random seed (0 keeps the configured seed)")
	debug := flag.Bool("debug", false, "log per-second frame stats to stderr")
	script := flag.String("script", "", "JSON test script to run")
	envFile := flag.String("env", ".env", "dotenv file loaded before reading HEARTSCENE_* variables")
	flag.Parse()

	if err := heartscene.LoadEnv(*envFile); err != nil {
		log.Fatal(err)
	}
	if *configPath != "" {
		if err := os.Setenv(heartscene.EnvConfigPath, *configPath); err != nil {
			log.Fatal(err)
		}
	}
	cfg, err := heartscene.ConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *debug {
		cfg.Debug = true
	}

	scene, err := heartscene.NewScene(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	run := heartscene.RunConfigFrom(cfg)
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		runner, err := heartscene.LoadTestScript(data)
		if err != nil {
			log.Fatal(err)
		}
		scene.SetTestRunner(runner)
		run.ExitWhenScriptDone = true
		log.Printf("running script %s", *script)
	}

	if err := heartscene.Run(scene, run); err != nil {
		log.Fatal(err)
	}
}
