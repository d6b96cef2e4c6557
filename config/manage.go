/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	cfgtps "github.com/nabbar/golib/config/types"
	spfvpr "github.com/spf13/viper"

	libver "github.com/nabbar/golib/version"
)

// RegisterVersion stores the version instance exposed to every component
// through Init. A nil version is tolerated: getVersion will hand back nil.
func (o *model) RegisterVersion(vrs libver.Version) {
	o.fct.Store(fctVersion, vrs)
}

func (o *model) getVersion() libver.Version {
	if i, l := o.fct.Load(fctVersion); !l {
		return nil
	} else if v, k := i.(libver.Version); !k {
		return nil
	} else {
		return v
	}
}

// RegisterFuncViper registers the function exposing the shared Viper
// instance to components during Init/reload.
func (o *model) RegisterFuncViper(fct cfgtps.FuncViper) {
	o.fct.Store(fctViper, fct)
}

func (o *model) getViper() *spfvpr.Viper {
	if i, l := o.fct.Load(fctViper); !l {
		return nil
	} else if v, k := i.(cfgtps.FuncViper); !k {
		return nil
	} else if v == nil {
		return nil
	} else {
		return v()
	}
}

// RegisterMonitorPool registers the function used to attach a component's
// health monitors to the shared monitor pool.
func (o *model) RegisterMonitorPool(fct cfgtps.FuncMonitorPool) {
	o.fct.Store(fctMonitorPool, fct)
}

func (o *model) getFctMonitorPool() cfgtps.FuncMonitorPool {
	if i, l := o.fct.Load(fctMonitorPool); !l {
		return nil
	} else if v, k := i.(cfgtps.FuncMonitorPool); !k {
		return nil
	} else {
		return v
	}
}

// getMonitorPool is the fallback FuncMonitorPool handed to components when
// none has been registered: it silently drops the monitor registration.
func (o *model) getMonitorPool(_ string, _ func() error) {
}

// RegisterFuncStartBefore registers a hook called before the start sequence.
func (o *model) RegisterFuncStartBefore(fct FuncEvent) {
	o.fct.Store(fctStartBefore, fct)
}

// RegisterFuncStartAfter registers a hook called after the start sequence.
func (o *model) RegisterFuncStartAfter(fct FuncEvent) {
	o.fct.Store(fctStartAfter, fct)
}

func (o *model) runFuncEvent(key uint8) error {
	if i, l := o.fct.Load(key); !l {
		return nil
	} else if v, k := i.(FuncEvent); !k {
		return nil
	} else if v == nil {
		return nil
	} else {
		return v()
	}
}

// RegisterFuncReloadBefore registers a hook called before the reload sequence.
func (o *model) RegisterFuncReloadBefore(fct FuncEvent) {
	o.fct.Store(fctReloadBefore, fct)
}

// RegisterFuncReloadAfter registers a hook called after the reload sequence.
func (o *model) RegisterFuncReloadAfter(fct FuncEvent) {
	o.fct.Store(fctReloadAfter, fct)
}

// RegisterFuncStopBefore registers a hook called before the stop sequence.
func (o *model) RegisterFuncStopBefore(fct FuncEvent) {
	o.fct.Store(fctStopBefore, fct)
}

// RegisterFuncStopAfter registers a hook called after the stop sequence.
func (o *model) RegisterFuncStopAfter(fct FuncEvent) {
	o.fct.Store(fctStopAfter, fct)
}
