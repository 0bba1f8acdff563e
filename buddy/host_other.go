// Copyright 2025 CloudWeGo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build !linux

package buddy

// NewMmapHost is unavailable on this platform; it falls back to SliceHost,
// which reserves the arena as a plain Go allocation and cannot enforce the
// commit boundary at the hardware level.
func NewMmapHost(size int) (Host, error) {
	return NewSliceHost(size), nil
}
