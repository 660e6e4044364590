package panel

import (
	"time"

	"github.com/goburrow/modbus"
	"github.com/pkg/errors"
)

// endpointClient is the subset of a Modbus connection the mirror needs.
// Satisfied by *tcpClient and by test fakes.
type endpointClient interface {
	WriteRegisters(addr uint16, regs []uint16) error
	WriteCoils(addr uint16, bits []bool) error
	Close() error
}

// tcpClient is a single Modbus TCP connection to one display unit.
type tcpClient struct {
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

func newTCPClient(endpoint string, unitID uint8, timeout time.Duration) (*tcpClient, error) {
	if endpoint == "" {
		return nil, errors.New("panel: endpoint required")
	}

	h := modbus.NewTCPClientHandler(endpoint)
	h.Timeout = timeout
	h.SlaveId = unitID

	if err := h.Connect(); err != nil {
		return nil, errors.Wrap(err, "panel: connect")
	}

	return &tcpClient{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (c *tcpClient) Close() error {
	return c.handler.Close()
}

func (c *tcpClient) WriteRegisters(addr uint16, regs []uint16) error {
	_, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs))
	return err
}

func (c *tcpClient) WriteCoils(addr uint16, bits []bool) error {
	_, err := c.client.WriteMultipleCoils(addr, uint16(len(bits)), packBits(bits))
	return err
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		out[2*i] = byte(r >> 8)
		out[2*i+1] = byte(r)
	}
	return out
}

func packBits(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
