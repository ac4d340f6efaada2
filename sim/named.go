package sim

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

// Name returns the name of the object.
func (b *NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase
func MakeNamedBase(name string) NamedBase {
	if name == "" {
		panic("name must not be empty")
	}

	return NamedBase{name: name}
}

// NamedHookable represent something both have a name and can be hooked.
type NamedHookable interface {
	Named
	Hookable
	InvokeHook(HookCtx)
}
