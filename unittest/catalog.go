// This file is part of Smokescreen.
//
// Smokescreen is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Smokescreen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Smokescreen.  If not, see <https://www.gnu.org/licenses/>.

package unittest

import "github.com/ferrovia/smokescreen/curated"

// Catalog is the registry that resolves the base name of a ".test" file to
// the module of the same name. Modules are registered by the application
// before the harness runs. Registration order is preserved.
type Catalog struct {
	modules map[string]Module
	names   []string
}

// NewCatalog is the preferred method of initialisation for the Catalog type.
func NewCatalog() *Catalog {
	return &Catalog{
		modules: make(map[string]Module),
	}
}

// Register a module with the catalog. Registering a second module with the
// same name is an error.
func (cat *Catalog) Register(mod Module) error {
	if _, ok := cat.modules[mod.Name]; ok {
		return curated.Errorf(DuplicateModule, mod.Name)
	}
	cat.modules[mod.Name] = mod
	cat.names = append(cat.names, mod.Name)
	return nil
}

// Lookup the module registered under the given name.
func (cat *Catalog) Lookup(name string) (Module, bool) {
	mod, ok := cat.modules[name]
	return mod, ok
}

// Names of all registered modules, in registration order.
func (cat *Catalog) Names() []string {
	return cat.names
}
