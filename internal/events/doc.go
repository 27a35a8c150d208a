// SilverScreened - Movie Social Tracking and Recommendations
// Copyright 2026 Saphal Katuwal
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/SaphalKatuwal/SilverScreened

/*
Package events carries user activity (watched, watchlist, review, rating
and follow) from the services that produce it to the websocket clients of
the actor's followers.

Transport:

  - In-process watermill gochannel by default
  - NATS core via watermill-nats when events.nats_url is set. JetStream is
    disabled and no queue group is used, so every server instance receives
    every event and delivers it to its own websocket clients.

Publishing is best-effort: Bus.Publish logs and counts failures and the
calling service ignores them.

Usage Example:

	bus, err := events.NewBus(&cfg.Events, events.NewLogger())
	if err != nil {
	    return err
	}
	defer bus.Close()

	fanout := events.NewFanout(userService, hub)
	router := events.NewRouter(bus, fanout.Handle)
	tree.AddMessagingService(router)
*/
package events
