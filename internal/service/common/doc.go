// Package common holds helpers shared by the controller services.
//
// It currently guards against two controllers driving the same GPIO lines
// by scanning the process table for another instance.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
