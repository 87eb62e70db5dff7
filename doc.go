// Package jsmodules populates a goja runtime with internal JavaScript modules
// whose sources ship embedded in the host binary.
//
// A Tree names two directories inside a read-only fs.FS:
//
//   - the modules directory, scanned recursively; every .js file is compiled
//     and registered with the runtime's ModuleLoader as "jsmodule_<stem>" so
//     scripts can require it later.
//   - the initializer directory; every .js file directly inside it is compiled
//     and evaluated immediately as global setup code, under a name derived
//     from its relative path ("node/buffer.js" becomes "node:buffer").
//
// Data flow:
//
//	Tree -> walk -> Unit -> Engine.Compile -> ModuleLoader.Register
//	                     -> Engine.CompileAndEvaluate
//
// Bootstrap runs once per Runtime and stops at the first failure. Units
// processed before the failure stay registered or evaluated.
package jsmodules
