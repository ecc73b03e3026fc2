// Package gpu provides the device-parallel execution strategy using
// gogpu/wgpu compute shaders.
//
// Importing the package registers the strategy under the name "gpu":
//
//	import _ "github.com/gogpu/fractal/gpu"
//
// GPU resources are created lazily on the first render pass. Every
// failure mode — no adapter, shader build failure, dispatch failure —
// is returned as an error from Evaluate, so a degraded pass surfaces
// diagnostics instead of crashing and the caller never paints over its
// raster with partial data.
package gpu

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/fractal"
)

// workgroupSize must match @workgroup_size in escape.wgsl.
const workgroupSize = 64

func init() {
	fractal.Register(fractal.StrategyDevice, func() fractal.Strategy { return New() })
}

// Device evaluates the grid as a data-parallel transform on a GPU:
// the sample coordinates are flattened into a storage buffer, the
// escape shader runs one invocation per sample, and the counts are
// read back in grid order.
//
// Device is safe for concurrent use; passes are serialized internally.
type Device struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	adapterName string
	ready       bool
	closed      bool
}

var _ fractal.Strategy = (*Device)(nil)

// New creates the device strategy. No GPU resources are touched until
// the first Evaluate call.
func New() *Device { return &Device{} }

// Label implements fractal.Strategy. Once a pass has initialized the
// device, the label is the adapter name.
func (d *Device) Label() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.adapterName != "" {
		return d.adapterName
	}
	return "GPU"
}

// Evaluate implements fractal.Strategy. The elapsed time covers buffer
// packing, transfer, dispatch, completion wait and readback, mirroring what
// the CPU strategies measure.
func (d *Device) Evaluate(ctx context.Context, g *fractal.Grid) (*fractal.Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.ensureReady(); err != nil {
		return nil, err
	}

	start := time.Now()
	counts, err := d.dispatch(g)
	if err != nil {
		return nil, err
	}
	return &fractal.Result{
		Counts:  counts,
		Elapsed: time.Since(start),
	}, nil
}

// dispatch runs one compute pass over the grid: upload coordinates,
// one shader invocation per sample, copy to staging, wait for the
// submission to complete, map and read back. Caller must hold d.mu
// with the pipeline ready.
func (d *Device) dispatch(g *fractal.Grid) ([]int, error) {
	n := g.Len()
	coordBytes := packCoords(g)
	resultSize := uint64(n * 4)

	paramsBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_params", Size: 16,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create params buffer: %w", err)
	}
	defer d.device.DestroyBuffer(paramsBuf)

	coordsBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_coords", Size: uint64(len(coordBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create coords buffer: %w", err)
	}
	defer d.device.DestroyBuffer(coordsBuf)

	resultsBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_results", Size: resultSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("create results buffer: %w", err)
	}
	defer d.device.DestroyBuffer(resultsBuf)

	stagingBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "escape_staging", Size: resultSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(stagingBuf)

	d.queue.WriteBuffer(paramsBuf, 0, packParams(n))
	d.queue.WriteBuffer(coordsBuf, 0, coordBytes)

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "escape_bind", Layout: d.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: 16}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: coordsBuf.NativeHandle(), Offset: 0, Size: uint64(len(coordBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: resultsBuf.NativeHandle(), Offset: 0, Size: resultSize}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "escape_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("escape"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "escape_pass"})
	pass.SetPipeline(d.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch((uint32(n)+workgroupSize-1)/workgroupSize, 1, 1)
	pass.End()

	encoder.CopyBufferToBuffer(resultsBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: resultSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	subIdx, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wait for GPU: %w", err)
	}
	if completed := d.queue.PollCompleted(); completed < subIdx {
		return nil, fmt.Errorf("wait for GPU: submission %d not completed (highest %d)", subIdx, completed)
	}

	readback := make([]byte, resultSize)
	mapping, err := d.device.MapBuffer(stagingBuf, 0, resultSize)
	if err != nil {
		return nil, fmt.Errorf("map staging buffer: %w", err)
	}
	copy(readback, unsafe.Slice((*byte)(mapping.Ptr), resultSize))
	if err := d.device.UnmapBuffer(stagingBuf); err != nil {
		return nil, fmt.Errorf("unmap staging buffer: %w", err)
	}
	return unpackCounts(readback, n), nil
}

// Close releases all GPU resources. The strategy cannot be used
// afterwards.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.destroyPipeline()
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.queue = nil
	d.ready = false
	d.closed = true
}

// ensureReady initializes the GPU instance, adapter, device and the
// escape pipeline. Caller must hold d.mu.
func (d *Device) ensureReady() error {
	if d.closed {
		return ErrClosed
	}
	if d.ready {
		return nil
	}

	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not available", ErrNoDevice)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	d.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return ErrNoDevice
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	d.device = openDev.Device
	d.queue = openDev.Queue
	d.adapterName = selected.Info.Name

	if err := d.createPipeline(); err != nil {
		d.device.Destroy()
		d.device = nil
		d.queue = nil
		return err
	}

	d.ready = true
	fractal.Logger().Info("gpu: device strategy initialized", "adapter", d.adapterName)
	return nil
}

// createPipeline compiles the escape shader and builds the compute
// pipeline. All failures are reported as *BuildError. Caller must hold
// d.mu.
func (d *Device) createPipeline() error {
	spirv, err := compileShaderToSPIRV(escapeShaderSource)
	if err != nil {
		return &BuildError{Stage: "compile", Log: err.Error(), Err: err}
	}

	shader, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "escape",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return &BuildError{Stage: "module", Err: err}
	}
	d.shader = shader

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "escape_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return &BuildError{Stage: "pipeline", Err: fmt.Errorf("create bind group layout: %w", err)}
	}
	d.bindLayout = bindLayout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "escape_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{d.bindLayout},
	})
	if err != nil {
		return &BuildError{Stage: "pipeline", Err: fmt.Errorf("create pipeline layout: %w", err)}
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "escape_pipeline", Layout: d.pipeLayout,
		Compute: hal.ComputeState{Module: d.shader, EntryPoint: "main"},
	})
	if err != nil {
		return &BuildError{Stage: "pipeline", Err: err}
	}
	d.pipeline = pipeline

	return nil
}

// destroyPipeline releases pipeline resources. Caller must hold d.mu.
func (d *Device) destroyPipeline() {
	if d.device == nil {
		return
	}
	if d.pipeline != nil {
		d.device.DestroyComputePipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.bindLayout != nil {
		d.device.DestroyBindGroupLayout(d.bindLayout)
		d.bindLayout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}

// packCoords flattens the grid into little-endian f64 (x, y) pairs,
// matching the shader's array<vec2<f64>> layout (16-byte stride).
func packCoords(g *fractal.Grid) []byte {
	out := make([]byte, g.Len()*16)
	for i, s := range g.Samples() {
		binary.LittleEndian.PutUint64(out[i*16:], math.Float64bits(real(s.C)))
		binary.LittleEndian.PutUint64(out[i*16+8:], math.Float64bits(imag(s.C)))
	}
	return out
}

// packParams returns the 16-byte uniform block holding the sample
// count.
func packParams(count int) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint32(out, uint32(count))
	return out
}

// unpackCounts converts the readback bytes into per-sample counts.
func unpackCounts(readback []byte, n int) []int {
	counts := make([]int, n)
	for i := range counts {
		counts[i] = int(binary.LittleEndian.Uint32(readback[i*4:]))
	}
	return counts
}
