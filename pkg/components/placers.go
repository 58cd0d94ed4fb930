package components

import (
	"fmt"

	"github.com/progressit/progressive/pkg/core"
	"github.com/progressit/progressive/pkg/errors"
	"github.com/progressit/progressive/pkg/toolkit"
)

// ContainerPlacers returns placers that add a child's widget to c and
// remove it again.
func ContainerPlacers(c *toolkit.Container) core.Placers {
	return core.Placers{
		Attach: func(w core.Widget) { c.Add(asWidget("components.Attach", w)) },
		Detach: func(w core.Widget) { c.Remove(asWidget("components.Detach", w)) },
	}
}

func asWidget(op string, w core.Widget) toolkit.Widget {
	tw, ok := w.(toolkit.Widget)
	if !ok {
		panic(errors.New(op, errors.KindConfig, "",
			fmt.Errorf("%T is not a toolkit widget", w)))
	}
	return tw
}
