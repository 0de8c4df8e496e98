// Package factory provides a small generic registry used to instantiate values
// from a type name and a map of raw settings. Product creators and metrics
// sinks are both registered here. Factories decode the settings into typed
// structs and return the concrete implementation.
//
// Example usage:
//
//	reg := factory.NewRegistry[io.Reader]()
//	reg.Register("file", func(conf map[string]any) (io.Reader, error) {
//	    var c struct{ Path string `json:"path"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return os.Open(c.Path)
//	})
//	r, err := reg.Create(factory.ModuleConfig{Type: "file", Conf: map[string]any{"path": "foo"}})
//
// Unknown type names fail with *UnregisteredTypeError, which matches
// ErrUnregisteredType under errors.Is.
package factory
