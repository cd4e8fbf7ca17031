// Package rig loads and instantiates a beamline rig: the set of devices a
// session controls, declared in HCL.
//
// A rig is a single .hcl file or a directory searched recursively for .hcl
// files. Each file may declare motor, shutter, monochromator and gateway
// blocks, plus locals blocks whose attributes become variables available to
// every other block as 'local.<name>'.
package rig
