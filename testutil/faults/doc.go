// Package faults wraps a shell.UnitOfWork so that tests can inject failures into single collaborator calls
// while everything else runs against a real engine.
package faults
