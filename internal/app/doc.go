// Package app wires the configuration, the session store, the terminal and the request
// dispatcher together and runs the user commands of the admin client.
package app
