package main

import (
	"fmt"

	"github.com/dukerupert/carecircle/internal/push"
)

type VapidCmd struct{}

func (c *VapidCmd) Run() error {
	pub, priv, err := push.GenerateVAPIDKeys()
	if err != nil {
		return err
	}
	fmt.Printf("CARECIRCLE_VAPID_PUBLIC_KEY=%s\n", pub)
	fmt.Printf("CARECIRCLE_VAPID_PRIVATE_KEY=%s\n", priv)
	return nil
}
