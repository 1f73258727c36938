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

package log

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// 📓 Journal is the ordered, append-only log of a single transform run.
//
// A Journal belongs to exactly one run and is not safe for concurrent use.
// Every entry is mirrored to the context logger at debug level.
type Journal struct {
	entries []string
	zlog    *zerolog.Logger
}

// 🏭 NewJournal creates an empty journal bound to the logger in ctx
func NewJournal(ctx context.Context) *Journal {
	return &Journal{zlog: zerolog.Ctx(ctx)}
}

// Add appends an entry
func (j *Journal) Add(entry string) {
	j.entries = append(j.entries, entry)
	j.zlog.Debug().Int("entry", len(j.entries)-1).Msg(entry)
}

// Addf appends a formatted entry
func (j *Journal) Addf(format string, args ...any) {
	j.Add(fmt.Sprintf(format, args...))
}

// Entries returns a copy of the entries in insertion order
func (j *Journal) Entries() []string {
	out := make([]string, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of entries
func (j *Journal) Len() int {
	return len(j.entries)
}
