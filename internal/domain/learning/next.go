package learning

// NextIncomplete picks the resource a learner should tackle next: the
// first incomplete resource, by order index, inside the first module
// that is not yet completed. The boolean is false when every resource
// in the roadmap is done.
func NextIncomplete(r Roadmap) (Module, Resource, bool) {
	var module *Module
	for i := range r.Modules {
		m := &r.Modules[i]
		if m.Status == StatusCompleted || m.Status == StatusSkipped {
			continue
		}
		if !hasIncompleteResource(*m) {
			continue
		}
		if module == nil || m.OrderIndex < module.OrderIndex {
			module = m
		}
	}
	if module == nil {
		return Module{}, Resource{}, false
	}

	var resource *Resource
	for i := range module.Resources {
		res := &module.Resources[i]
		if res.Completed {
			continue
		}
		if resource == nil || res.OrderIndex < resource.OrderIndex {
			resource = res
		}
	}
	if resource == nil {
		return Module{}, Resource{}, false
	}
	return *module, *resource, true
}

func hasIncompleteResource(m Module) bool {
	for _, res := range m.Resources {
		if !res.Completed {
			return true
		}
	}
	return false
}
