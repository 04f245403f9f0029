// Package hcl provides the HCL implementation of config.Loader. It parses
// plan files with hclparse, decodes their blocks with gohcl and binds numeric
// and boolean attributes through cty conversion.
package hcl
