// Package config loads weave.yaml, the optional project configuration.
//
// A missing file is not an error for LoadOptional and LoadFromWorkingDir;
// defaults from New apply. Validate reports problems as W303 errors that
// point at the offending line.
//
// # Configuration File Structure
//
//	app:
//	  name: demo
//	  root: Home
//	engine:
//	  maxChainedPasses: 100
//	  fetchTimeout: 30s
//	log:
//	  level: info
//	  format: text
//	devtools:
//	  enabled: true
//	  addr: localhost:7070
//	metrics:
//	  namespace: weave
//	snapshot:
//	  dir: snapshots
//	  s3:
//	    bucket: my-snapshots
//	    prefix: dev/
//	    region: us-east-1
//
// # Usage
//
//	cfg, err := config.LoadOptional(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    errors.PrintError(err)
//	}
package config
