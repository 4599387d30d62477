/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
	"github.com/sirupsen/logrus"
)

// runWithCounters runs fn while counting the CPU instructions of the calling
// thread. If the counter can't be opened fn runs without it.
func runWithCounters(fn func() error, log logrus.FieldLogger) error {
	var (
		ran    bool
		runErr error
	)
	pv, err := perf.CPUInstructions(func() error {
		ran = true
		runErr = fn()
		return runErr
	})
	if !ran {
		log.WithError(err).Warn("hardware counters unavailable")
		return fn()
	}
	if runErr != nil {
		return runErr
	}
	if err != nil {
		log.WithError(err).Warn("reading hardware counters")
		return nil
	}
	log.WithFields(logrus.Fields{
		"instructions": pv.Value,
		"enabled":      pv.TimeEnabled,
		"running":      pv.TimeRunning,
	}).Info("perf")
	return nil
}
