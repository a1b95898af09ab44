// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package striad

import "runtime/debug"

const modulePath = "github.com/LynnColeArt/striad"

// Version returns the module version and checksum recorded in the running
// binary, or empty strings when the binary carries no module information.
// A replaced module reports the replacement.
func Version() (version, sum string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	if info.Main.Path == modulePath {
		return info.Main.Version, info.Main.Sum
	}
	for _, m := range info.Deps {
		if m.Path != modulePath {
			continue
		}
		if r := m.Replace; r != nil {
			return m.Version + "=>" + r.Path + " " + r.Version, r.Sum
		}
		return m.Version, m.Sum
	}
	return "", ""
}
