// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import "github.com/fatih/color"

// stylesheet is the colors used for rendering a diagnostic. With colors
// disabled every style prints its arguments unchanged.
type stylesheet struct {
	err, warning, remark, note *color.Color
	gutter, footer             *color.Color
}

func newStylesheet(colorize bool) *stylesheet {
	ss := &stylesheet{
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		remark:  color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		gutter:  color.New(color.FgBlue),
		footer:  color.New(color.FgCyan, color.Bold),
	}

	for _, c := range []*color.Color{ss.err, ss.warning, ss.remark, ss.note, ss.gutter, ss.footer} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return ss
}

// level returns the style for a diagnostic level.
func (ss *stylesheet) level(level Level) *color.Color {
	switch level {
	case Error:
		return ss.err
	case Warning:
		return ss.warning
	case Remark:
		return ss.remark
	default:
		return ss.note
	}
}
