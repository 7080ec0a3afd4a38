// Package config loads the document model settings.
//
// Settings come from three layers, each overriding the one below:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← DOCMODEL_PAGE_SIZE, DOCMODEL_SPAN_COLOR, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← TOML or YAML, chosen by extension
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	page_size = 1024
//	log_level = "info"
//
//	[paragraph]
//	font_size = 12
//	font_weight = 400
//	line_height = 1.2
//	color = "#000000"
//
//	[span]
//	font_size = 12
//	italic = false
//
// Load the configuration and hand it to a document:
//
//	cfg, err := config.Load("docmodel.toml")
//	if err != nil {
//	    return err
//	}
//	doc := engine.New(engine.WithConfig(cfg))
package config
