// Copyright 2021 The httpx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient sorts the errors a Discord API request can end in
// into transient and non-transient categories. Retry deciders use it
// to decide whether another attempt is worthwhile, and package metrics
// uses it to label failed attempts.
//
// Package transient depends only on the standard library.
package transient
