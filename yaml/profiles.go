// Package yaml loads bot preference profiles from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/waio"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk layout:
//
//	default:
//	  categories: [Article]
//	bots:
//	  GPTBot:
//	    categories: [FAQPage, Article]
//	    attributes: [mainEntity]
type profileFile struct {
	Default waio.PreferenceProfile            `yaml:"default"`
	Bots    map[string]waio.PreferenceProfile `yaml:"bots"`
}

// LoadProfiles decodes a profile table. Bot names are matched
// case-insensitively; unknown bots and unknown keys are rejected with
// EINVALID. An empty document yields the built-in table.
func LoadProfiles(r io.Reader) (*waio.ProfileTable, error) {
	var f profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return waio.DefaultProfileTable(), nil
		}
		return nil, waio.Errorf(waio.EINVALID, "decode profiles: %v", err)
	}

	profiles := make(map[waio.Bot]waio.PreferenceProfile, len(f.Bots))
	for name, p := range f.Bots {
		cfg, err := waio.ParseBot(name)
		if err != nil {
			return nil, err
		}
		if _, dup := profiles[cfg.Bot]; dup {
			return nil, waio.Errorf(waio.EINVALID, "duplicate profile for bot %s", cfg.Bot)
		}
		if p.HeuristicPenalty < 0 {
			return nil, waio.Errorf(waio.EINVALID, "negative heuristic penalty for bot %s", cfg.Bot)
		}
		profiles[cfg.Bot] = p
	}
	return waio.NewProfileTable(profiles, f.Default), nil
}

// LoadProfilesFile reads a profile table from a file.
// Returns ENOTFOUND if the file does not exist.
func LoadProfilesFile(path string) (*waio.ProfileTable, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, waio.Errorf(waio.ENOTFOUND, "profile file %s not found", path)
		}
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	defer file.Close()

	return LoadProfiles(file)
}
