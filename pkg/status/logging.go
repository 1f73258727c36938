// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"

	"github.com/fatih/color"
)

// 🎨 StatusLabel renders a status with its symbol, colored for terminals
func StatusLabel(s FileStatus) string {
	switch s {
	case StatusModified:
		return color.BlueString("⟳ %s", s)
	case StatusPreview:
		return color.YellowString("~ %s", s)
	case StatusRestored:
		return color.GreenString("✓ %s", s)
	case StatusFailed:
		return color.RedString("✗ %s", s)
	default:
		return color.HiBlackString("- %s", s)
	}
}

// 🎯 CountsLabel renders replacement and line counts for a file
func CountsLabel(info FileInfo) string {
	counts := fmt.Sprintf("%d/%d", info.Primary, info.Secondary)
	lines := fmt.Sprintf("%s %s",
		color.GreenString("+%d", info.Inserted),
		color.RedString("-%d", info.Deleted))
	if info.Primary+info.Secondary == 0 {
		return color.HiBlackString("%s", counts)
	}
	return counts + " " + lines
}
