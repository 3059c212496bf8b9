package usecase

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"

	"github.com/bnema/guestview/internal/application/guestview"
	"github.com/bnema/guestview/internal/domain/entity"
)

// command adapts scenario arguments to one controller method.
type command func(c *guestview.Controller, a args) (any, error)

// commands maps the scripting names of the command API to the controller.
var commands = map[string]command{
	"go": func(c *guestview.Controller, a args) (any, error) {
		n, err := a.intAt(0)
		if err != nil {
			return nil, err
		}
		c.Go(n)
		return nil, nil
	},
	"back":         noArgs((*guestview.Controller).Back),
	"forward":      noArgs((*guestview.Controller).Forward),
	"canGoBack":    query((*guestview.Controller).CanGoBack),
	"canGoForward": query((*guestview.Controller).CanGoForward),
	"loadUrl": func(c *guestview.Controller, a args) (any, error) {
		url, err := a.stringAt(0)
		if err != nil {
			return nil, err
		}
		c.LoadURL(url)
		return nil, nil
	},
	"reload": func(c *guestview.Controller, _ args) (any, error) {
		c.Reload(false)
		return nil, nil
	},
	"reloadIgnoringCache": func(c *guestview.Controller, _ args) (any, error) {
		c.Reload(true)
		return nil, nil
	},
	"stop":         noArgs((*guestview.Controller).Stop),
	"getProcessId": query((*guestview.Controller).ProcessID),
	"getZoom":      query((*guestview.Controller).Zoom),
	"setZoom": func(c *guestview.Controller, a args) (any, error) {
		f, err := a.floatAt(0)
		if err != nil {
			return nil, err
		}
		c.SetZoom(f)
		return nil, nil
	},
	"find": func(c *guestview.Controller, a args) (any, error) {
		requestID, err := a.intAt(0)
		if err != nil {
			return nil, err
		}
		text, err := a.stringAt(1)
		if err != nil {
			return nil, err
		}
		var req entity.FindRequest
		if len(a) > 2 && a[2] != nil {
			if err := mapstructure.Decode(a[2], &req); err != nil {
				return nil, fmt.Errorf("find options: %w", err)
			}
		}
		c.Find(requestID, text, req)
		return nil, nil
	},
	"stopFinding": func(c *guestview.Controller, a args) (any, error) {
		action := ""
		if len(a) > 0 {
			var err error
			if action, err = a.stringAt(0); err != nil {
				return nil, err
			}
		}
		c.StopFinding(action)
		return nil, nil
	},
	"insertCSS": func(c *guestview.Controller, a args) (any, error) {
		css, err := a.stringAt(0)
		if err != nil {
			return nil, err
		}
		c.InsertCSS(css)
		return nil, nil
	},
	"executeScript": func(c *guestview.Controller, a args) (any, error) {
		script, err := a.stringAt(0)
		if err != nil {
			return nil, err
		}
		c.ExecuteScript(script)
		return nil, nil
	},
	"openDevTools":     noArgs((*guestview.Controller).OpenDevTools),
	"closeDevTools":    noArgs((*guestview.Controller).CloseDevTools),
	"isDevToolsOpened": query((*guestview.Controller).IsDevToolsOpened),
	"getTitle":         query((*guestview.Controller).Title),
	"getUrl":           query((*guestview.Controller).Src),
}

// CommandNames lists the commands a scenario call step accepts.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *replay) call(name string, raw []any) (any, error) {
	cmd, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownCommand, name)
	}
	return cmd(r.view, args(raw))
}

func noArgs(fn func(*guestview.Controller)) command {
	return func(c *guestview.Controller, _ args) (any, error) {
		fn(c)
		return nil, nil
	}
}

func query[T any](fn func(*guestview.Controller) T) command {
	return func(c *guestview.Controller, _ args) (any, error) {
		return fn(c), nil
	}
}

// args are call arguments as decoded from a scenario file.
type args []any

func (a args) at(i int) (any, error) {
	if i >= len(a) {
		return nil, fmt.Errorf("missing argument %d", i+1)
	}
	return a[i], nil
}

func (a args) intAt(i int) (int, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("argument %d: %w", i+1, err)
	}
	return n, nil
}

func (a args) floatAt(i int) (float64, error) {
	v, err := a.at(i)
	if err != nil {
		return 0, err
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("argument %d: %w", i+1, err)
	}
	return f, nil
}

func (a args) stringAt(i int) (string, error) {
	v, err := a.at(i)
	if err != nil {
		return "", err
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("argument %d: %w", i+1, err)
	}
	return s, nil
}
