// This file is part of Dualview.
//
// Dualview is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dualview is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dualview.  If not, see <https://www.gnu.org/licenses/>.

// Package framepool implements the fixed set of reusable pixel buffers that
// sit between a render source and the GPU upload consumer.
//
// Every slot in a Pool owns one buffer and a reference count. The pool holds
// one reference of its own so a count of exactly one means that nobody else
// is looking at the buffer and it can be written to. The producer claims a
// slot with AcquireForWrite(), fills it, and then calls BufferRef() to turn
// its claim into a Shared handle that travels with the frame. The consumer
// calls Release() on the handle once the pixels have been uploaded, at which
// point the slot becomes writable again.
//
// No locks are involved. A slot that is still referenced is simply skipped
// by the next AcquireForWrite(). When every slot is referenced the pool is
// exhausted and the caller is expected to drop the frame. This is the only
// backpressure in the pipeline and it bounds both memory and latency.
package framepool
