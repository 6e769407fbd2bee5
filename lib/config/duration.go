/*
Copyright 2020 Gravitational, Inc.

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

package config

import (
	"encoding/json"
	"time"

	"github.com/gravitational/trace"
)

// Timeout provides "human" json and yaml serialization/deserialization such as "1m" or "1h" for time.Duration.
//
// For further information, see:
//
//	https://github.com/golang/go/issues/10275
//	https://stackoverflow.com/questions/48050945/how-to-unmarshal-json-into-durations
type Timeout struct {
	time.Duration
}

func (d Timeout) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Timeout) UnmarshalJSON(buf []byte) error {
	var data string
	if err := json.Unmarshal(buf, &data); err != nil {
		return trace.BadParameter("cannot parse %q as duration: %v", buf, err)
	}
	return trace.Wrap(d.parse(data))
}

func (d Timeout) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Timeout) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var data string
	if err := unmarshal(&data); err != nil {
		return trace.BadParameter("cannot parse duration: %v", err)
	}
	return trace.Wrap(d.parse(data))
}

// SetEnv interprets data as a duration.
// SetEnv implements configure.EnvSetter
func (d *Timeout) SetEnv(data string) error {
	return d.parse(data)
}

// OrDefault returns the duration or def if the timeout is unset
func (d Timeout) OrDefault(def time.Duration) time.Duration {
	if d.Duration == 0 {
		return def
	}
	return d.Duration
}

func (d *Timeout) parse(data string) error {
	dur, err := time.ParseDuration(data)
	if err != nil {
		return trace.BadParameter("cannot parse %q as duration: %v", data, err)
	}
	if dur < 0 {
		return trace.BadParameter("timeout must be >= 0")
	}
	d.Duration = dur
	return nil
}
