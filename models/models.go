// SPDX-License-Identifier: GPL-3.0-only

package models

// AllModels lists every table owned by this service. db.CheckSchema walks it at startup.
var AllModels []any
