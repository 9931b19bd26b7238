/*
Copyright © 2020 ConsenSys

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package parallel splits range-based work (MSMs, NTTs in the exponent,
// FK convolutions) across goroutines. Every public vector commitment
// operation stays synchronous from the caller's perspective: Execute
// blocks until all chunks are done.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Execute splits [iStart,iEnd) into chunks, runs work on each chunk
// concurrently, and blocks until every chunk has finished. If work
// returns an error, Execute waits for the in-flight chunks and returns
// the first error encountered.
func Execute(iStart, iEnd int, work func(start, end int) error) error {
	nbIterations := iEnd - iStart
	if nbIterations <= 0 {
		return nil
	}

	nbTasks := runtime.NumCPU()
	nbIterationsPerChunk := nbIterations / nbTasks
	if nbIterationsPerChunk < 1 {
		nbIterationsPerChunk = 1
		nbTasks = nbIterations
	}

	var g errgroup.Group
	extra := nbIterations - nbTasks*nbIterationsPerChunk
	offset := 0
	for t := 0; t < nbTasks; t++ {
		start := iStart + t*nbIterationsPerChunk + offset
		end := start + nbIterationsPerChunk
		if extra > 0 {
			end++
			extra--
			offset++
		}
		g.Go(func() error {
			return work(start, end)
		})
	}
	return g.Wait()
}
