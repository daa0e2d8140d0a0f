// Package neurallink is the embeddable client for a multi-agent analysis
// backend. It submits chat turns, interprets the agents' telemetry into a
// session log, and keeps a four-axis confidence snapshot and a one-shot
// refusal signal for a presentation layer to render.
//
// Quick start:
//
//	c, err := neurallink.New(neurallink.WithEndpoint("http://127.0.0.1:8000"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.Start()
//	_ = c.Submit(ctx, "Can my landlord keep the deposit?")
//	fmt.Println(c.Snapshot().Legal)
//	if r, ok := c.TakeRefusal(); ok {
//	    fmt.Println("refused:", r.Reason)
//	}
//
// A Client is safe for concurrent use, but only one turn may be in flight
// at a time.
package neurallink
