package panel

import "go.uber.org/zap"

// PanelBuilderOption is a functional option for configuring a Panel.
type PanelBuilderOption func(*panel)

// WithDispatcher routes action callbacks through d, typically the frame driver's Post.
//
// Parameters:
//   - d: the dispatcher
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithDispatcher(d Dispatcher) PanelBuilderOption {
	return func(p *panel) {
		if d != nil {
			p.dispatch = d
		}
	}
}

// WithStatus sets the source of the GET /status payload.
//
// Parameters:
//   - status: returns a JSON-encodable snapshot
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithStatus(status func() any) PanelBuilderOption {
	return func(p *panel) {
		p.status = status
	}
}

// WithLogger sets the panel logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - PanelBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) PanelBuilderOption {
	return func(p *panel) {
		if logger != nil {
			p.logger = logger
		}
	}
}
