/*
 * Copyright (C) 2023 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsNamespace is the namespace of all metrics exported by this module.
const MetricsNamespace = "openid4vc"

// RegisterCollectors registers the given collectors with the given registerer (the default registerer when nil).
// Collectors that are already registered are ignored, so components can be created more than once.
func RegisterCollectors(registerer prometheus.Registerer, collectors ...prometheus.Collector) error {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}
