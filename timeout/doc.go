// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout sets the timeout of individual attempts while a
// client executes a request descriptor. Policy is the interface; Fixed,
// Adaptive, and ByRoute build common policies.
package timeout
